package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchDoc struct {
	ParentID Nullable[string] `json:"parent_id"`
	Interval Nullable[int]    `json:"interval"`
}

func TestNullable_DistinguishesAbsentNullAndValue(t *testing.T) {
	var doc patchDoc
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id": null}`), &doc))
	assert.True(t, doc.ParentID.Set)
	assert.True(t, doc.ParentID.Null)
	assert.Nil(t, doc.ParentID.Ptr())
	assert.False(t, doc.Interval.Set)

	doc = patchDoc{}
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id": "p1", "interval": 15}`), &doc))
	assert.True(t, doc.ParentID.Set)
	assert.False(t, doc.ParentID.Null)
	assert.Equal(t, "p1", *doc.ParentID.Ptr())
	assert.Equal(t, 15, doc.Interval.Value)
}
