package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plannerHuhTheme returns a custom huh theme using the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateSatisfaction accepts empty or a score from 1 to 10.
func validateSatisfaction(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 10 {
		return fmt.Errorf("enter a number from 1 to 10")
	}
	return nil
}

// reviewAnswers holds the raw form input for a session review.
type reviewAnswers struct {
	Satisfaction string
	TasksDone    string
	Notes        string
}

// toReview converts answers into a review, leaving blank answers unset.
// Returns nil when nothing was filled in.
func (a reviewAnswers) toReview() *service.SessionReview {
	var r service.SessionReview
	if v, err := strconv.Atoi(strings.TrimSpace(a.Satisfaction)); err == nil {
		r.SatisfactionScore = &v
	}
	if s := strings.TrimSpace(a.TasksDone); s != "" {
		r.TasksDone = &s
	}
	if s := strings.TrimSpace(a.Notes); s != "" {
		r.Notes = &s
	}
	if r.SatisfactionScore == nil && r.TasksDone == nil && r.Notes == nil {
		return nil
	}
	return &r
}

// newReviewForm asks for the end-of-session review. Every field is optional.
func newReviewForm(title string, answers *reviewAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Session review").
				Description(title),
			huh.NewInput().
				Title("Satisfaction (1-10, optional)").
				Placeholder("7").
				Value(&answers.Satisfaction).
				Validate(validateSatisfaction),
			huh.NewText().
				Title("What got done? (optional)").
				Value(&answers.TasksDone),
			huh.NewText().
				Title("Notes (optional)").
				Value(&answers.Notes),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}
