// Package store implements the flat-file record stores backing the service.
//
// Each store is one delimited text file: a header row naming the columns,
// then one row per record, every value kept as text. The format has no
// update-in-place or delete-by-key primitive, so any mutation that is not a
// pure append is a full read-transform-rewrite. A per-store mutex keeps each
// read-then-rewrite sequence exclusive; the files themselves are assumed to
// belong to this process alone.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Record is one row keyed by column name. All values are text; typed
// interpretation happens at the model layer.
type Record map[string]string

// Store is a single flat-file collection with a fixed column schema.
type Store struct {
	path    string
	columns []string
	mu      sync.Mutex
}

// New creates a store handle for the file at path. The file is not touched
// until EnsureInitialized or the first write.
func New(path string, columns []string) *Store {
	return &Store{path: path, columns: columns}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// View exposes the store operations to an Exclusive callback without
// re-acquiring the lock.
type View struct {
	s *Store
}

// Exclusive runs fn while holding the store lock, so a read-check-write
// sequence observes no interleaved mutation.
func (s *Store) Exclusive(fn func(v View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(View{s: s})
}

// EnsureInitialized creates the backing file with a header row if it does
// not exist yet. Idempotent; an existing file is left untouched.
func (s *Store) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitialized()
}

// ReadAll returns every data row in file order. A missing file reads as an
// empty store.
func (s *Store) ReadAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Append writes one record to the end of the file, using the file's
// existing column order.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(rec)
}

// RewriteAll truncates the file and writes the header plus the given
// records. This is the only way to modify or remove existing rows.
func (s *Store) RewriteAll(recs []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewriteAll(recs)
}

// NextID returns the id the next inserted record should carry:
// max(existing)+1, or 1 for an empty store. Rows with a blank or
// unparseable id are skipped. Ids are never reused after deletion.
func (s *Store) NextID() (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID()
}

func (v View) ReadAll() ([]Record, error)     { return v.s.readAll() }
func (v View) Append(rec Record) error        { return v.s.append(rec) }
func (v View) RewriteAll(recs []Record) error { return v.s.rewriteAll(recs) }
func (v View) NextID() (uint, error)          { return v.s.nextID() }

func (s *Store) ensureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(s.columns); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// header returns the column order recorded in the file itself, so files
// written by older deployments with fewer columns keep their layout across
// appends and rewrites. A missing file reports the configured schema.
func (s *Store) header() ([]string, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return s.columns, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		// An empty file has no header; treat it as uninitialized.
		return s.columns, nil
	}
	return header, nil
}

func (s *Store) readAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) append(rec Record) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}
	header, err := s.header()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(rowFor(header, rec)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *Store) rewriteAll(recs []Record) error {
	header, err := s.header()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := w.Write(rowFor(header, rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) nextID() (uint, error) {
	records, err := s.readAll()
	if err != nil {
		return 0, err
	}
	var max uint64
	for _, rec := range records {
		id, err := strconv.ParseUint(rec["id"], 10, 32)
		if err != nil {
			continue
		}
		if id > max {
			max = id
		}
	}
	return uint(max) + 1, nil
}

func rowFor(header []string, rec Record) []string {
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = rec[col]
	}
	return row
}
