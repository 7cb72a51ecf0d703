package ticket

import "time"

// CreateInput is the payload for creating a ticket. Title is mandatory;
// everything else is optional. Due is the raw caller-supplied string and is
// parsed after validation.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Labels      []string
	Assignee    string
	Due         string
}

// Patch describes a partial update of mutable ticket fields. Nil pointers
// mean "leave unchanged"; Labels is replaced wholesale when non-nil.
type Patch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Labels      []string
	Assignee    *string
	Due         *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Labels == nil && p.Assignee == nil && p.Due == nil
}

// Filters narrows List results. Empty fields match everything.
type Filters struct {
	Status   string
	Priority string
}

// ParseDue parses a caller-supplied due value: an RFC 3339 timestamp or a
// bare YYYY-MM-DD date. The zero time is returned for empty input.
func ParseDue(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return parsed.UTC(), nil
	}

	parsed, err = time.Parse("2006-01-02", s)
	if err == nil {
		return parsed.UTC(), nil
	}

	return time.Time{}, err
}
