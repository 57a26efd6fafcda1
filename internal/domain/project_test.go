package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() *Project {
	return &Project{Name: "Thesis", Color: "#aabbcc", DefaultDuration: 60}
}

func TestProjectValidate_Valid(t *testing.T) {
	assert.NoError(t, validProject().Validate())
}

func TestProjectValidate_Name(t *testing.T) {
	p := validProject()
	p.Name = ""
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	p.Name = strings.Repeat("x", 256)
	assert.Error(t, p.Validate())

	p.Name = strings.Repeat("é", 255)
	assert.NoError(t, p.Validate(), "length is counted in characters, not bytes")
}

func TestProjectValidate_Color(t *testing.T) {
	cases := map[string]bool{
		"#000000":  true,
		"#AbCdEf":  true,
		"000000":   false,
		"#12345":   false,
		"#1234567": false,
		"#gggggg":  false,
	}
	for color, ok := range cases {
		p := validProject()
		p.Color = color
		if ok {
			assert.NoError(t, p.Validate(), color)
		} else {
			assert.Error(t, p.Validate(), color)
		}
	}
}

func TestProjectValidate_DurationAndInterval(t *testing.T) {
	p := validProject()
	p.DefaultDuration = 4
	assert.Error(t, p.Validate())

	p.DefaultDuration = 5
	assert.NoError(t, p.Validate())

	zero := 0
	p.NotificationInterval = &zero
	assert.Error(t, p.Validate())

	one := 1
	p.NotificationInterval = &one
	assert.NoError(t, p.Validate())
}

func TestProjectRef_NotifyInterval(t *testing.T) {
	var nilRef *ProjectRef
	assert.Equal(t, 10, nilRef.NotifyInterval(10))

	ref := &ProjectRef{}
	assert.Equal(t, 10, ref.NotifyInterval(10))

	n := 25
	ref.NotificationInterval = &n
	assert.Equal(t, 25, ref.NotifyInterval(10))
}

func TestErrorClassification(t *testing.T) {
	err := NotFoundf("Project %s not found", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, "Project abc not found", err.Error())

	assert.True(t, errors.Is(Conflictf("dup"), ErrConflict))
}
