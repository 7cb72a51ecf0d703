// Package validate checks create and update payloads against the
// configured field schema before they reach the store.
//
// Validation happens only on the write path. Values already on disk are
// surfaced as-is on read, even when they fall outside the configured
// vocabulary; that asymmetry is deliberate.
//
// The checks are schema-driven: each field declared in the config schema is
// checked for required presence, enum membership, and datetime format. The
// one exception is status, whose vocabulary lives in the configured states,
// not in a schema enum.
package validate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/ticket"
)

// Violation describes one failed constraint.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

// Error carries every violated constraint for a payload so callers can
// report all of them at once.
type Error struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}

	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// fieldOrder is the canonical violation order, matching the on-disk header
// field order. Schema fields outside this set follow alphabetically.
var fieldOrder = []string{"title", "description", "status", "priority", "labels", "assignee", "due"}

// orderedFieldNames returns every field to check in deterministic order:
// the canonical fields first (status is always included so the vocabulary
// check cannot be disabled by omitting it from the schema), then any extra
// schema fields sorted by name.
func orderedFieldNames(cfg config.Config) []string {
	names := append([]string{}, fieldOrder...)

	canonical := map[string]bool{}
	for _, name := range fieldOrder {
		canonical[name] = true
	}

	var extra []string

	for name := range cfg.Schema {
		if !canonical[name] {
			extra = append(extra, name)
		}
	}

	sort.Strings(extra)

	return append(names, extra...)
}

// Create validates a creation payload against the configured schema.
func Create(cfg config.Config, in ticket.CreateInput) error {
	values := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"status":      in.Status,
		"priority":    in.Priority,
		"assignee":    in.Assignee,
		"due":         in.Due,
	}

	var violations []Violation

	for _, name := range orderedFieldNames(cfg) {
		field, declared := cfg.Schema[name]

		if name == "status" {
			violations = append(violations, checkStatus(cfg, in.Status)...)

			continue
		}

		if declared && field.Type == config.TypeList {
			if field.Required && len(in.Labels) == 0 {
				violations = append(violations, requiredViolation(name))
			}

			continue
		}

		value, known := values[name]
		if !known || !declared {
			continue
		}

		if strings.TrimSpace(value) == "" {
			if field.Required {
				violations = append(violations, requiredViolation(name))
			}

			continue
		}

		violations = append(violations, checkValue(field, name, value)...)
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}

	return nil
}

// Update validates a field patch against the configured schema. Only
// provided fields are checked; a required field may be absent from a patch
// but not patched to empty.
func Update(cfg config.Config, p ticket.Patch) error {
	pointers := map[string]*string{
		"title":       p.Title,
		"description": p.Description,
		"status":      p.Status,
		"priority":    p.Priority,
		"assignee":    p.Assignee,
		"due":         p.Due,
	}

	var violations []Violation

	for _, name := range orderedFieldNames(cfg) {
		if name == "status" {
			if p.Status != nil {
				violations = append(violations, checkStatus(cfg, *p.Status)...)
			}

			continue
		}

		ptr, known := pointers[name]
		if !known || ptr == nil {
			continue
		}

		field, declared := cfg.Schema[name]
		if !declared {
			continue
		}

		if strings.TrimSpace(*ptr) == "" {
			if field.Required {
				violations = append(violations, Violation{
					Field:   name,
					Rule:    "non-empty",
					Message: name + " cannot be empty",
				})
			}

			continue
		}

		violations = append(violations, checkValue(field, name, *ptr)...)
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}

	return nil
}

// Status validates a bare status value, as used by move operations.
func Status(cfg config.Config, status string) error {
	violations := checkStatus(cfg, status)
	if status == "" {
		violations = append(violations, requiredViolation("status"))
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}

	return nil
}

func requiredViolation(name string) Violation {
	return Violation{
		Field:   name,
		Rule:    "required",
		Message: name + " is required",
	}
}

func checkStatus(cfg config.Config, status string) []Violation {
	if status == "" {
		return nil
	}

	if cfg.IsKnownStatus(status) {
		return nil
	}

	return []Violation{{
		Field:   "status",
		Rule:    "enum",
		Message: fmt.Sprintf("unknown status %q (allowed: %s)", status, strings.Join(cfg.StatusNames(), " | ")),
	}}
}

// checkValue applies one schema declaration to a non-empty scalar value.
func checkValue(field config.Field, name, value string) []Violation {
	var violations []Violation

	if field.Type == config.TypeDatetime {
		_, err := time.Parse(time.RFC3339, value)
		if err != nil {
			// Date-only values are common in due dates; accept those too.
			_, dateErr := time.Parse("2006-01-02", value)
			if dateErr != nil {
				violations = append(violations, Violation{
					Field:   name,
					Rule:    "datetime",
					Message: fmt.Sprintf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name),
				})
			}
		}
	}

	if len(field.Enum) > 0 && !contains(field.Enum, value) {
		violations = append(violations, Violation{
			Field:   name,
			Rule:    "enum",
			Message: fmt.Sprintf("%s must be one of: %s", name, strings.Join(field.Enum, " | ")),
		})
	}

	return violations
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}
