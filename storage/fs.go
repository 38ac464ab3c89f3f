package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fabihno/automated-quotation/models"

	"github.com/google/uuid"
)

// Search failures are advisory, never fatal. Handlers turn them into
// user-facing text.
var (
	ErrNoStorageRoot            = errors.New("no quotations directory found")
	ErrNoMatchingRepresentative = errors.New("no representative directories found")
	ErrNoMatchingQuotations     = errors.New("no quotations found")
)

// ErrOutsideRoot is returned when a relative path escapes the storage root.
var ErrOutsideRoot = errors.New("path resolves outside the storage root")

// QuotationStore is the persistence boundary for stored quotation PDFs.
// The filesystem implementation below is the only backend; an indexed
// backend can replace it without touching composition logic.
type QuotationStore interface {
	// List returns the stored quotations whose directory name contains rep
	// and whose filename contains quotationNo, both case-insensitive.
	// Empty filters match everything.
	List(quotationNo string, rep string) ([]models.QuotationFile, error)
	// Claim atomically creates relPath as an empty placeholder. A claim that
	// fails with fs.ErrExist means the name is taken.
	Claim(relPath string) error
	// Put writes data to relPath via a temp file and rename, so no partial
	// artifact is ever visible at the final path.
	Put(relPath string, data []byte) error
	Exists(relPath string) bool
	// NumberTaken reports whether any file in repDir already carries the
	// given quotation number.
	NumberTaken(repDir string, quotationNo string) bool
	Remove(relPath string) error
	// Abs resolves relPath inside the root, rejecting traversal.
	Abs(relPath string) (string, error)
	EnsureDir(relDir string) error
	WritableDir(relDir string) bool
	Root() string
	// SweepTemp removes temp artifacts older than maxAge, returning the
	// number removed.
	SweepTemp(maxAge time.Duration) int
}

const tempSuffix = ".tmp"

// FSStore stores quotation PDFs on a directory tree keyed by representative.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) Abs(relPath string) (string, error) {
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(rootAbs, relPath)
	if full != rootAbs && !strings.HasPrefix(full, rootAbs+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}

func (s *FSStore) List(quotationNo string, rep string) ([]models.QuotationFile, error) {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return nil, ErrNoStorageRoot
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, ErrNoStorageRoot
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if rep == "" || strings.Contains(strings.ToLower(e.Name()), strings.ToLower(rep)) {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return nil, ErrNoMatchingRepresentative
	}

	var results []models.QuotationFile
	for _, dir := range dirs {
		files, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			continue
		}
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || !strings.HasSuffix(name, ".pdf") {
				continue
			}
			if quotationNo != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(quotationNo)) {
				continue
			}
			results = append(results, models.QuotationFile{
				File:    name,
				RelPath: filepath.Join(dir, name),
			})
		}
	}
	if len(results) == 0 {
		return nil, ErrNoMatchingQuotations
	}
	return results, nil
}

func (s *FSStore) Claim(relPath string) error {
	full, err := s.Abs(relPath)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *FSStore) Put(relPath string, data []byte) error {
	full, err := s.Abs(relPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	tmp := filepath.Join(dir, "."+uuid.NewString()+tempSuffix)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write quotation file: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize quotation file: %w", err)
	}
	return nil
}

func (s *FSStore) Exists(relPath string) bool {
	full, err := s.Abs(relPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func (s *FSStore) NumberTaken(repDir string, quotationNo string) bool {
	full, err := s.Abs(repDir)
	if err != nil {
		return false
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return false
	}
	for _, e := range entries {
		name := e.Name()
		if name == quotationNo+".pdf" || strings.HasPrefix(name, quotationNo+"_") {
			return true
		}
	}
	return false
}

func (s *FSStore) Remove(relPath string) error {
	full, err := s.Abs(relPath)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (s *FSStore) EnsureDir(relDir string) error {
	full, err := s.Abs(relDir)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0777)
}

func (s *FSStore) WritableDir(relDir string) bool {
	full, err := s.Abs(relDir)
	if err != nil {
		return false
	}
	probe, err := os.CreateTemp(full, ".probe-*"+tempSuffix)
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

func (s *FSStore) SweepTemp(maxAge time.Duration) int {
	removed := 0
	cutoff := time.Now().Add(-maxAge)
	filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), tempSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed
}
