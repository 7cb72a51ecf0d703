// Package ticket defines the ticket record, its markdown+frontmatter
// on-disk form, and id generation.
//
// A ticket is one markdown file: a YAML frontmatter block delimited by
// "---" fences carrying the semantic fields, followed by a free-text body.
// The filename is `<id>.md` by convention but lookups always go through the
// id field inside the frontmatter, so files may be moved or renamed without
// breaking discovery.
package ticket

import (
	"strconv"
	"strings"
	"time"
)

// Ticket represents one ticket record.
//
// FilePath and Content are derived at read/write time and are never
// serialized into the frontmatter header.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Labels      []string
	Assignee    string
	Created     time.Time
	Updated     time.Time
	Due         time.Time

	FilePath string
	Content  string
}

// Priority values. Priority is optional on a ticket; the empty string means
// unset.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// DefaultStatus is the status applied when neither the caller nor the
// project configuration supplies one.
const DefaultStatus = "todo"

// DefaultBody is the body written for newly created tickets when the
// project template has no content override.
const DefaultBody = "\n## Notes\n"

// DefaultIDPrefix is prepended to generated ids unless overridden by the
// project template.
const DefaultIDPrefix = "ticket-"

// validPriorities are the accepted priority values.
var validPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ValidPriorities returns the accepted priority values in display order.
func ValidPriorities() []string {
	out := make([]string, len(validPriorities))
	copy(out, validPriorities)

	return out
}

// IsValidPriority reports whether p is an accepted priority value.
func IsValidPriority(p string) bool {
	for _, v := range validPriorities {
		if v == p {
			return true
		}
	}

	return false
}

// maxSlugLength bounds the slug component of generated ids.
const maxSlugLength = 32

// slugFallback is used when the title contains no alphanumeric characters
// at all (e.g. a title of pure punctuation).
const slugFallback = "item"

// GenerateID creates a ticket id from a title slug and a base-36 encoded
// millisecond timestamp: `<prefix><slug>-<ts36>`.
//
// The slug is the lowercased title with every run of non-alphanumeric
// characters collapsed to a single hyphen, trimmed, and truncated to 32
// characters. The timestamp suffix makes ids from distinct creation times
// distinct; there is no collision check beyond that.
func GenerateID(title, prefix string) string {
	return GenerateIDAt(title, prefix, time.Now())
}

// GenerateIDAt is GenerateID with an explicit timestamp, for deterministic
// tests.
func GenerateIDAt(title, prefix string, now time.Time) string {
	slug := Slugify(title)
	if slug == "" {
		slug = slugFallback
	}

	ts := strconv.FormatInt(now.UnixMilli(), 36)

	return prefix + slug + "-" + ts
}

// Slugify lowercases the title, collapses runs of non-alphanumeric
// characters into single hyphens, strips leading/trailing hyphens, and
// truncates to the slug length limit.
func Slugify(title string) string {
	var builder strings.Builder

	lastHyphen := false

	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			builder.WriteRune(r)

			lastHyphen = false

			continue
		}

		if !lastHyphen && builder.Len() > 0 {
			builder.WriteByte('-')

			lastHyphen = true
		}
	}

	slug := strings.Trim(builder.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	return slug
}
