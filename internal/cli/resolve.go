package cli

import (
	"context"
	"fmt"
	"strings"
)

// match resolves user input against candidates by exact ID, then
// case-insensitive name, then unique ID prefix.
func match(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var byName []string
	for i, name := range names {
		if strings.EqualFold(name, input) {
			byName = append(byName, ids[i])
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches); use the ID", kind, input, len(byName))
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveProjectID accepts a project UUID, UUID prefix, or name.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(projects))
	names := make([]string, len(projects))
	for i, p := range projects {
		ids[i], names[i] = p.ID, p.Name
	}
	return match("project", input, ids, names)
}

// resolveOptionalProject returns nil for empty input.
func resolveOptionalProject(ctx context.Context, app *App, input string) (*string, error) {
	if input == "" {
		return nil, nil
	}
	id, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// resolveTagIDs resolves each tag by UUID, prefix, or name.
func resolveTagIDs(ctx context.Context, app *App, inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	tags, err := app.Tags.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tags))
	names := make([]string, len(tags))
	for i, t := range tags {
		ids[i], names[i] = t.ID, t.Name
	}
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := match("tag", in, ids, names)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func resolvePlanningID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Planning.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return match("planning", input, ids, make([]string, len(ids)))
}

// resolveSessionID defaults to the active session when input is empty.
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		active, err := app.Sessions.Active(ctx)
		if err != nil {
			return "", err
		}
		if active == nil {
			return "", fmt.Errorf("no active session")
		}
		return active.ID, nil
	}
	sessions, err := app.Sessions.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return match("session", input, ids, make([]string, len(ids)))
}
