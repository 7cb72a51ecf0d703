// Package store implements the ticket storage layer: markdown files with
// YAML frontmatter under a project folder.
//
// The filesystem is the sole source of truth. There is no in-process cache
// or index; every operation re-reads from disk and observes the latest
// on-disk state. Concurrent mutations of the same ticket are last-write-wins
// with no detection, which is acceptable for this tool's single-user scope.
// Individual writes go through an atomic rename so readers never observe a
// torn file, but that is not coordination between writers.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/ticket"
)

// ErrNotFound is returned when a referenced ticket id does not exist.
// Adapters map it to a 404 or a clear CLI message.
var ErrNotFound = errors.New("ticket not found")

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store owns one ticket directory.
type Store struct {
	dir string
	cfg config.Config
	log *slog.Logger
}

// New creates a store rooted at root/<cfg.Folder>. The root path is
// explicit rather than implied by the process working directory so tests
// and embedders can isolate stores in temporary directories.
func New(root string, cfg config.Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		dir: filepath.Join(root, cfg.Folder),
		cfg: cfg,
		log: logger,
	}
}

// Dir returns the absolute ticket directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Config returns the configuration the store was built with.
func (s *Store) Config() config.Config {
	return s.cfg
}

// EnsureReady guarantees the ticket directory exists, creating it and any
// parents if absent. Idempotent.
func (s *Store) EnsureReady() error {
	err := os.MkdirAll(s.dir, dirPerms)
	if err != nil {
		return fmt.Errorf("create ticket directory: %w", err)
	}

	return nil
}

// Create validates nothing itself (callers validate first), generates an
// id from the title, stamps timestamps, and writes a new ticket file.
func (s *Store) Create(ctx context.Context, in ticket.CreateInput) (*ticket.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	readyErr := s.EnsureReady()
	if readyErr != nil {
		return nil, readyErr
	}

	now := time.Now().UTC().Truncate(time.Millisecond)

	prefix := s.cfg.Template.IDPrefix
	if prefix == "" {
		prefix = ticket.DefaultIDPrefix
	}

	status := in.Status
	if status == "" {
		status = s.cfg.Template.DefaultStatus
	}

	if status == "" {
		status = ticket.DefaultStatus
	}

	due, dueErr := ticket.ParseDue(in.Due)
	if dueErr != nil {
		return nil, fmt.Errorf("parse due date: %w", dueErr)
	}

	t := &ticket.Ticket{
		ID:          ticket.GenerateIDAt(in.Title, prefix, now),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    in.Priority,
		Labels:      in.Labels,
		Assignee:    in.Assignee,
		Created:     now,
		Updated:     now,
		Due:         due,
	}

	body := s.cfg.Template.Content
	if body == "" {
		body = ticket.DefaultBody
	}

	content, serErr := ticket.Serialize(t, body)
	if serErr != nil {
		return nil, serErr
	}

	path := filepath.Join(s.dir, t.ID+".md")

	writeErr := writeFile(path, content)
	if writeErr != nil {
		return nil, writeErr
	}

	t.FilePath = path
	t.Content = string(content)

	return t, nil
}

// List walks the ticket directory recursively, parses every markdown file,
// and returns the tickets matching the filters. Files that do not parse or
// that lack an id or title are skipped, not errors: a single corrupt file
// must never abort a listing. Result order follows directory traversal
// order and is not contractually stable.
func (s *Store) List(ctx context.Context, f ticket.Filters) ([]*ticket.Ticket, error) {
	entries, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, 0, len(entries))

	for _, e := range entries {
		if f.Status != "" && e.ticket.Status != f.Status {
			continue
		}

		if f.Priority != "" && e.ticket.Priority != f.Priority {
			continue
		}

		tickets = append(tickets, e.ticket)
	}

	return tickets, nil
}

// Get returns the ticket with the given id, or (nil, nil) when no such
// ticket exists so callers can branch on absence without error handling.
func (s *Store) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return nil, nil
	}

	return entry.ticket, nil
}

// UpdateStatus patches only the status and updated fields of the ticket
// with the given id, leaving every other header field and the body
// byte-for-byte intact. Returns ErrNotFound when the id does not exist.
func (s *Store) UpdateStatus(ctx context.Context, id, newStatus string) error {
	entry, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if entry == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := bumpUpdated(entry.ticket.Created)

	patched, patchErr := ticket.PatchStatus([]byte(entry.ticket.Content), newStatus, updated)
	if patchErr != nil {
		return fmt.Errorf("patch %s: %w", id, patchErr)
	}

	return writeFile(entry.ticket.FilePath, patched)
}

// UpdateFields merges the patch onto the stored ticket, bumps updated,
// rewrites the full frontmatter header, and leaves the body unchanged.
// Returns ErrNotFound when the id does not exist.
func (s *Store) UpdateFields(ctx context.Context, id string, p ticket.Patch) (*ticket.Ticket, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t := entry.ticket

	if p.Title != nil {
		t.Title = *p.Title
	}

	if p.Description != nil {
		t.Description = *p.Description
	}

	if p.Status != nil {
		t.Status = *p.Status
	}

	if p.Priority != nil {
		t.Priority = *p.Priority
	}

	if p.Labels != nil {
		t.Labels = p.Labels
	}

	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}

	if p.Due != nil {
		due, dueErr := ticket.ParseDue(*p.Due)
		if dueErr != nil {
			return nil, fmt.Errorf("parse due date: %w", dueErr)
		}

		t.Due = due
	}

	t.Updated = bumpUpdated(t.Created)

	content, serErr := ticket.Serialize(t, entry.body)
	if serErr != nil {
		return nil, serErr
	}

	writeErr := writeFile(t.FilePath, content)
	if writeErr != nil {
		return nil, writeErr
	}

	t.Content = string(content)

	return t, nil
}

// Delete removes the ticket file with the given id. Irreversible; there is
// no soft delete. Returns ErrNotFound when the id does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	entry, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if entry == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removeErr := os.Remove(entry.ticket.FilePath)
	if removeErr != nil {
		return fmt.Errorf("delete ticket file: %w", removeErr)
	}

	return nil
}

// entry is one parsed ticket file from a scan.
type entry struct {
	ticket *ticket.Ticket
	body   string
}

// scan walks the ticket directory recursively and parses every markdown
// file, skipping (with a debug log) files that are not valid tickets.
// A missing status reads as the default status, and missing created/updated
// timestamps are backfilled with the current time rather than failing.
func (s *Store) scan(ctx context.Context) ([]*entry, error) {
	readyErr := s.EnsureReady()
	if readyErr != nil {
		return nil, readyErr
	}

	var entries []*entry

	now := time.Now().UTC().Truncate(time.Millisecond)

	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read ticket file %s: %w", path, readErr)
		}

		t, body, parseErr := ticket.Parse(raw)
		if parseErr != nil {
			s.log.Debug("skipping markdown file with unparseable frontmatter",
				"path", path, "error", parseErr)

			return nil
		}

		if t.ID == "" || t.Title == "" {
			s.log.Debug("skipping markdown file without ticket id or title",
				"path", path)

			return nil
		}

		if t.Status == "" {
			t.Status = ticket.DefaultStatus
		}

		if t.Created.IsZero() {
			t.Created = now
		}

		if t.Updated.IsZero() {
			t.Updated = now
		}

		t.FilePath = path

		entries = append(entries, &entry{ticket: t, body: body})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan ticket directory: %w", walkErr)
	}

	return entries, nil
}

// find returns the first scanned entry whose id matches, or nil.
func (s *Store) find(ctx context.Context, id string) (*entry, error) {
	entries, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.ticket.ID == id {
			return e, nil
		}
	}

	return nil, nil
}

// bumpUpdated returns the mutation timestamp: the current time, nudged one
// millisecond past created when the mutation lands inside the same
// millisecond, so updated is always strictly later than created after any
// update.
func bumpUpdated(created time.Time) time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if !now.After(created) {
		return created.Add(time.Millisecond)
	}

	return now
}

// writeFile writes content via an atomic rename and fixes up permissions,
// which atomic.WriteFile does not set for new files.
func writeFile(path string, content []byte) error {
	err := atomic.WriteFile(path, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("write ticket file: %w", err)
	}

	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("set ticket file permissions: %w", chmodErr)
	}

	return nil
}
