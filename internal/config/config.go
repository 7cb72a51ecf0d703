// Package config loads and writes project configuration.
//
// Configuration lives in a min-pmt.config.json (or .jsonc) file at the
// project root. The file may contain comments and trailing commas; it is
// parsed as JWCC via hujson and standardized before decoding. A missing
// file is not an error: defaults apply.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tailscale/hujson"

	"github.com/cmwen/minpmt/internal/ticket"
)

// Config holds all project configuration options.
type Config struct {
	// Folder is the directory under the project root that holds ticket
	// files.
	Folder string `json:"folder"`

	// States is the status vocabulary. Keys are status names; values carry
	// board presentation hints.
	States map[string]State `json:"states,omitempty"`

	// Schema declares per-field validation rules applied to create/update
	// payloads. Stored files are never revalidated against it on read.
	Schema map[string]Field `json:"schema,omitempty"`

	// Template controls ticket creation defaults.
	Template Template `json:"template,omitempty"`

	// Source is the path of the config file that was loaded, or empty when
	// defaults are in effect. Not serialized.
	Source string `json:"-"`
}

// State describes one status value and how the board presents it.
type State struct {
	Color string `json:"color,omitempty"`
	Order int    `json:"order"`
}

// Field declares validation rules for one ticket field.
type Field struct {
	// Type is one of "string", "list", or "datetime".
	Type string `json:"type"`

	// Required marks the field as mandatory on creation.
	Required bool `json:"required,omitempty"`

	// Enum restricts string values to the listed set.
	Enum []string `json:"enum,omitempty"`

	// Items is the element type for list fields.
	Items string `json:"items,omitempty"`
}

// Template controls defaults applied when tickets are created.
type Template struct {
	// DefaultStatus is applied when a create call supplies no status.
	DefaultStatus string `json:"defaultStatus,omitempty"`

	// IDPrefix is prepended to generated ticket ids.
	IDPrefix string `json:"idPrefix,omitempty"`

	// Content is the markdown body written into new ticket files.
	Content string `json:"content,omitempty"`
}

// Field type names accepted in schema declarations.
const (
	TypeString   = "string"
	TypeList     = "list"
	TypeDatetime = "datetime"
)

// FileName is the primary config file name; FileNameJSONC is also accepted.
const (
	FileName      = "min-pmt.config.json"
	FileNameJSONC = "min-pmt.config.jsonc"
)

// DefaultFolder is the ticket folder used when no config file overrides it.
const DefaultFolder = "pmt"

var (
	// ErrInvalidConfig wraps config file syntax or shape problems.
	ErrInvalidConfig = errors.New("invalid config file")

	// ErrFolderEmpty is returned when a config file sets folder to the
	// empty string.
	ErrFolderEmpty = errors.New("config folder cannot be empty")
)

// Default returns the built-in configuration: folder "pmt", the
// todo/in-progress/done vocabulary, the standard field schema, and the
// stock creation template.
func Default() Config {
	return Config{
		Folder: DefaultFolder,
		States: map[string]State{
			"todo":        {Color: "#e2e8f0", Order: 0},
			"in-progress": {Color: "#fde68a", Order: 1},
			"done":        {Color: "#bbf7d0", Order: 2},
		},
		Schema: map[string]Field{
			"title":       {Type: TypeString, Required: true},
			"description": {Type: TypeString},
			"status":      {Type: TypeString},
			"priority":    {Type: TypeString, Enum: ticket.ValidPriorities()},
			"labels":      {Type: TypeList, Items: TypeString},
			"assignee":    {Type: TypeString},
			"due":         {Type: TypeDatetime},
		},
		Template: Template{
			DefaultStatus: ticket.DefaultStatus,
			IDPrefix:      ticket.DefaultIDPrefix,
			Content:       ticket.DefaultBody,
		},
	}
}

// Load reads configuration from dir, merging any config file found there
// over the defaults. A missing file yields the defaults unchanged.
func Load(dir string) (Config, error) {
	cfg := Default()

	path, raw, err := readConfigFile(dir)
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		return cfg, nil
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	var loaded Config

	decodeErr := json.Unmarshal(standardized, &loaded)
	if decodeErr != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, decodeErr)
	}

	cfg = merge(cfg, loaded)
	cfg.Source = path

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	return cfg, nil
}

// Init writes a starter config file to dir and returns the resulting
// configuration. An existing config file is overwritten.
func Init(dir, folder string) (Config, error) {
	cfg := Default()
	if folder != "" {
		cfg.Folder = folder
	}

	encoded, err := json.MarshalIndent(struct {
		Folder string `json:"folder"`
	}{Folder: cfg.Folder}, "", "  ")
	if err != nil {
		return Config{}, fmt.Errorf("encode config: %w", err)
	}

	path := filepath.Join(dir, FileName)

	writeErr := os.WriteFile(path, append(encoded, '\n'), 0o600)
	if writeErr != nil {
		return Config{}, fmt.Errorf("write config: %w", writeErr)
	}

	cfg.Source = path

	return cfg, nil
}

// StatusNames returns the configured status names sorted by board order,
// ties broken alphabetically so output is stable.
func (c Config) StatusNames() []string {
	names := make([]string, 0, len(c.States))
	for name := range c.States {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := c.States[names[i]], c.States[names[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}

		return names[i] < names[j]
	})

	return names
}

// IsKnownStatus reports whether name is part of the configured vocabulary.
func (c Config) IsKnownStatus(name string) bool {
	_, ok := c.States[name]

	return ok
}

func readConfigFile(dir string) (path string, raw []byte, err error) {
	for _, name := range []string{FileName, FileNameJSONC} {
		candidate := filepath.Join(dir, name)

		content, readErr := os.ReadFile(candidate)
		if readErr == nil {
			return candidate, content, nil
		}

		if !os.IsNotExist(readErr) {
			return "", nil, fmt.Errorf("read config %s: %w", candidate, readErr)
		}
	}

	return "", nil, nil
}

// merge overlays file-provided values onto the defaults. Empty sections in
// the file keep the defaults; a provided section replaces its default
// wholesale (states and schema are vocabularies, not deltas).
func merge(base, loaded Config) Config {
	out := base

	if loaded.Folder != "" {
		out.Folder = loaded.Folder
	}

	if len(loaded.States) > 0 {
		out.States = loaded.States
	}

	if len(loaded.Schema) > 0 {
		out.Schema = loaded.Schema
	}

	if loaded.Template.DefaultStatus != "" {
		out.Template.DefaultStatus = loaded.Template.DefaultStatus
	}

	if loaded.Template.IDPrefix != "" {
		out.Template.IDPrefix = loaded.Template.IDPrefix
	}

	if loaded.Template.Content != "" {
		out.Template.Content = loaded.Template.Content
	}

	return out
}

func validate(cfg Config) error {
	if cfg.Folder == "" {
		return ErrFolderEmpty
	}

	for name, field := range cfg.Schema {
		switch field.Type {
		case TypeString, TypeList, TypeDatetime:
		default:
			return fmt.Errorf("%w: schema field %q has unknown type %q", ErrInvalidConfig, name, field.Type)
		}
	}

	return nil
}
