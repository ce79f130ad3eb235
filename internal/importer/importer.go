// Package importer reads bank statement exports into transactions.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/spendtrend/internal/model"
)

// ErrUnknownFormat is returned by Lookup for a format no parser handles.
var ErrUnknownFormat = errors.New("unknown statement format")

// Parser turns one bank's statement export into transactions.
type Parser interface {
	Format() string
	Parse(r io.Reader) ([]model.Transaction, error)
}

// ParseFile opens the statement at path and parses it with p.
func ParseFile(p Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return txns, nil
}

// Registry looks up parsers by format name, ignoring case.
type Registry struct {
	byFormat map[string]Parser
}

// NewRegistry returns a registry holding parsers.
func NewRegistry(parsers ...Parser) (*Registry, error) {
	r := &Registry{byFormat: make(map[string]Parser, len(parsers))}
	for _, p := range parsers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds p under its format name.
func (r *Registry) Register(p Parser) error {
	key := strings.ToLower(p.Format())
	if _, dup := r.byFormat[key]; dup {
		return fmt.Errorf("parser for format %q already registered", key)
	}
	r.byFormat[key] = p
	return nil
}

// Lookup returns the parser for format.
func (r *Registry) Lookup(format string) (Parser, error) {
	if p, ok := r.byFormat[strings.ToLower(format)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry of the built-in parsers.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(&ChaseParser{})
	if err != nil {
		panic(err)
	}
	return r
}

// Statements waiting for import live in <root>/import and move to
// <root>/import/processed once their rows are stored.
const (
	inboxDir   = "import"
	archiveDir = "processed"
)

// Statement is a CSV export waiting in the import directory.
type Statement struct {
	Name string
	Path string
}

// Pending lists the CSV statements in <root>/import, by name.
func Pending(root string) ([]Statement, error) {
	dir := filepath.Join(root, inboxDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var out []Statement
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		out = append(out, Statement{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	return out, nil
}

// Archive moves s into <root>/import/processed, replacing any earlier
// statement of the same name.
func Archive(root string, s Statement) error {
	dst := filepath.Join(root, inboxDir, archiveDir)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := os.Rename(s.Path, filepath.Join(dst, s.Name)); err != nil {
		return fmt.Errorf("archiving %s: %w", s.Name, err)
	}
	return nil
}
