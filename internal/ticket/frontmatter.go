package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Delimiter is the frontmatter fence line.
const Delimiter = "---"

// TimeLayout is the on-disk timestamp format: RFC 3339 in UTC with
// millisecond precision, matching ISO-8601 output of other tooling that
// reads these files.
const TimeLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrNoFrontmatter is returned when content has no frontmatter block.
	ErrNoFrontmatter = errors.New("no frontmatter block")

	// ErrUnclosedFrontmatter is returned when the opening fence has no
	// matching closing fence.
	ErrUnclosedFrontmatter = errors.New("unclosed frontmatter block")

	// ErrStatusFieldNotFound is returned when a status patch cannot locate
	// the status field inside the frontmatter block.
	ErrStatusFieldNotFound = errors.New("status field not found in frontmatter")
)

// header is the serialized shape of the frontmatter block. Field order here
// is the field order on disk. Optional fields carry omitempty so an unset
// value never emits an empty key.
type header struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority,omitempty"`
	Labels      []string `yaml:"labels,omitempty"`
	Assignee    string   `yaml:"assignee,omitempty"`
	Created     string   `yaml:"created"`
	Updated     string   `yaml:"updated"`
	Due         string   `yaml:"due,omitempty"`
}

// FormatTime renders a timestamp in the on-disk layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses an on-disk timestamp. Returns the zero time for empty or
// unparseable input; callers treat zero as "missing" and backfill.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

// Serialize renders a ticket and body as a markdown file with a YAML
// frontmatter header. Unset optional fields are omitted from the header.
func Serialize(t *Ticket, body string) ([]byte, error) {
	h := header{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Labels:      t.Labels,
		Assignee:    t.Assignee,
		Created:     FormatTime(t.Created),
		Updated:     FormatTime(t.Updated),
	}

	if !t.Due.IsZero() {
		h.Due = FormatTime(t.Due)
	}

	encoded, err := yaml.Marshal(&h)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString(Delimiter + "\n")
	buf.Write(encoded)
	buf.WriteString(Delimiter + "\n")
	buf.WriteString(body)

	return buf.Bytes(), nil
}

// Parse splits raw file content into a ticket and its body.
//
// Parsing is tolerant in the same way the frontmatter convention demands:
// unknown keys are ignored, scalar fields accept any YAML scalar (coerced
// to string), and missing or malformed timestamps yield the zero time so
// callers can backfill. Parse does not require id or title to be present;
// the store decides whether a parsed file is a valid ticket.
func Parse(raw []byte) (*Ticket, string, error) {
	head, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, "", err
	}

	var fields map[string]any

	unmarshalErr := yaml.Unmarshal(head, &fields)
	if unmarshalErr != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", unmarshalErr)
	}

	t := &Ticket{
		ID:          scalarString(fields["id"]),
		Title:       scalarString(fields["title"]),
		Description: scalarString(fields["description"]),
		Status:      scalarString(fields["status"]),
		Priority:    scalarString(fields["priority"]),
		Labels:      stringList(fields["labels"]),
		Assignee:    scalarString(fields["assignee"]),
		Created:     scalarTime(fields["created"]),
		Updated:     scalarTime(fields["updated"]),
		Due:         scalarTime(fields["due"]),
		Content:     string(raw),
	}

	return t, string(body), nil
}

// splitFrontmatter separates the fenced YAML block from the body. The
// opening fence must be the first line of the file.
func splitFrontmatter(raw []byte) (head, body []byte, err error) {
	content := raw

	// Normalize a UTF-8 BOM away so fence detection works on files written
	// by editors that add one.
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	if !bytes.HasPrefix(content, []byte(Delimiter+"\n")) && !bytes.HasPrefix(content, []byte(Delimiter+"\r\n")) {
		return nil, nil, ErrNoFrontmatter
	}

	rest := content[len(Delimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	end := findClosingFence(rest)
	if end < 0 {
		return nil, nil, ErrUnclosedFrontmatter
	}

	head = rest[:end]

	body = rest[end:]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	return head, body, nil
}

// findClosingFence returns the byte offset in rest where the closing fence
// line starts, or -1 when absent.
func findClosingFence(rest []byte) int {
	offset := 0

	for offset <= len(rest) {
		lineEnd := bytes.IndexByte(rest[offset:], '\n')

		var line []byte
		if lineEnd < 0 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+lineEnd]
		}

		if string(bytes.TrimRight(line, "\r")) == Delimiter {
			return offset
		}

		if lineEnd < 0 {
			break
		}

		offset += lineEnd + 1
	}

	return -1
}

// scalarString coerces a YAML scalar to its string form. Lists and maps
// coerce to empty, matching the tolerant-read contract.
func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}

		return "false"
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case time.Time:
		return FormatTime(val)
	default:
		return ""
	}
}

// stringList coerces a YAML sequence to a string slice, stringifying each
// element. Non-sequence values yield nil.
func stringList(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(seq))
	for _, item := range seq {
		out = append(out, scalarString(item))
	}

	return out
}

// scalarTime coerces a YAML scalar to a timestamp. yaml.v3 may hand back a
// time.Time directly for unquoted ISO timestamps, or a string for quoted
// ones; both are accepted. Anything else is the zero time.
func scalarTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val.UTC()
	case string:
		return ParseTime(val)
	default:
		return time.Time{}
	}
}

// PatchStatus rewrites only the status and updated fields inside the
// frontmatter block of content, leaving every other header line and the
// body byte-for-byte intact. This is the one mutation that can never drop
// fields it does not understand.
func PatchStatus(content []byte, status string, updated time.Time) ([]byte, error) {
	// Tolerate a UTF-8 BOM the same way splitFrontmatter does, and keep it
	// in the rewritten file.
	bom := []byte("\xef\xbb\xbf")
	hadBOM := bytes.HasPrefix(content, bom)
	content = bytes.TrimPrefix(content, bom)

	lines := strings.Split(string(content), "\n")

	inFrontmatter := false
	statusPatched := false
	updatedPatched := false
	closingIdx := -1

	for i, line := range lines {
		if strings.TrimRight(line, "\r") == Delimiter {
			if inFrontmatter {
				closingIdx = i

				break
			}

			inFrontmatter = true

			continue
		}

		if !inFrontmatter {
			continue
		}

		if strings.HasPrefix(line, "status:") {
			lines[i] = "status: " + yamlScalar(status)
			statusPatched = true
		}

		if strings.HasPrefix(line, "updated:") {
			lines[i] = "updated: " + yamlScalar(FormatTime(updated))
			updatedPatched = true
		}
	}

	if !statusPatched {
		return nil, ErrStatusFieldNotFound
	}

	if !updatedPatched && closingIdx >= 0 {
		// Header predates the updated field; insert it before the closing
		// fence.
		inserted := append([]string{}, lines[:closingIdx]...)
		inserted = append(inserted, "updated: "+yamlScalar(FormatTime(updated)))
		inserted = append(inserted, lines[closingIdx:]...)
		lines = inserted
	}

	patched := []byte(strings.Join(lines, "\n"))
	if hadBOM {
		patched = append(append([]byte{}, bom...), patched...)
	}

	return patched, nil
}

// yamlScalar renders a single scalar value the way the YAML encoder would,
// so patched lines stay consistent with serialized ones.
func yamlScalar(s string) string {
	encoded, err := yaml.Marshal(s)
	if err != nil {
		return s
	}

	return strings.TrimRight(string(encoded), "\n")
}
