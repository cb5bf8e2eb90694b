// Package store persists ledgers as named JSON snapshots in a storage
// directory. Each snapshot is one file, <root>/<name>.json, rewritten in
// full on every save.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/ledger"
	"github.com/KyussCaesar/pfr/internal/log"
)

const (
	// Current is the ledger every command operates on.
	Current = "current"
	// Backup is written by backup and read by restore.
	Backup = "backup"

	ext = ".json"
)

var reName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidName reports whether name can be used as a snapshot name.
func ValidName(name string) bool {
	return reName.MatchString(name)
}

// IsReserved reports whether name is managed by the store itself.
func IsReserved(name string) bool {
	return name == Current || name == Backup
}

// Store reads and writes snapshots under a root directory.
type Store struct {
	root   string
	logger *log.Logger
}

// New creates a Store rooted at dir. The directory is created by Initialize.
func New(root string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{root: root, logger: logger.WithComponent(log.ComponentStore)}
}

// Root returns the storage directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file backing the named snapshot.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name+ext)
}

// Initialize creates the storage directory and resets the current ledger
// to empty.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating storage directory %s: %w: %w", s.root, errs.ErrIO, err)
	}
	return s.Save(Current, ledger.New())
}

// Load reads the named snapshot.
func (s *Store) Load(name string) (*ledger.Ledger, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%q: %w", name, errs.ErrInvalidName)
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ledger %q: %w", name, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", path, errs.ErrIO, err)
	}

	l := ledger.New()
	if len(strings.TrimSpace(string(data))) == 0 {
		s.logger.Debug("empty snapshot file", log.FieldSnapshot, name)
		return l, nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %w", path, errs.ErrDecode, err)
	}

	s.logger.Debug("loaded snapshot", log.FieldSnapshot, name, log.FieldCount, l.Len())
	return l, nil
}

// Save overwrites the named snapshot with l. The data is written to a
// temporary file first and renamed into place.
func (s *Store) Save(name string, l *ledger.Ledger) error {
	if !ValidName(name) {
		return fmt.Errorf("%q: %w", name, errs.ErrInvalidName)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger %q: %w: %w", name, errs.ErrEncode, err)
	}

	path := s.Path(name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w: %w", tmpPath, errs.ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w: %w", path, errs.ErrIO, err)
	}

	s.logger.Debug("saved snapshot", log.FieldSnapshot, name, log.FieldCount, l.Len())
	return nil
}

// LoadCurrent reads the active ledger.
func (s *Store) LoadCurrent() (*ledger.Ledger, error) {
	return s.Load(Current)
}

// SaveCurrent overwrites the active ledger.
func (s *Store) SaveCurrent(l *ledger.Ledger) error {
	return s.Save(Current, l)
}

// Copy loads from and saves the result as to. If the load fails, to is
// left untouched.
func (s *Store) Copy(from, to string) error {
	l, err := s.Load(from)
	if err != nil {
		return err
	}
	if err := s.Save(to, l); err != nil {
		return err
	}
	s.logger.Info("copied snapshot", log.FieldFrom, from, log.FieldTo, to)
	return nil
}

// Names returns the snapshots present in the root, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.root, errs.ErrIO, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if ValidName(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a user snapshot. Reserved names cannot be deleted.
func (s *Store) Delete(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%q: %w", name, errs.ErrInvalidName)
	}
	if IsReserved(name) {
		return fmt.Errorf("%q: %w", name, errs.ErrReservedName)
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ledger %q: %w", name, errs.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("removing %s: %w: %w", s.Path(name), errs.ErrIO, err)
	}
	return nil
}
