// Package repo provides persistence adapters for the production document
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	perr "linetrack/internal/platform/errors"
	"linetrack/internal/services/production/domain"
)

// FileStore keeps the document in one human readable JSON file
// writes go to a temp file in the same directory and are renamed over the target
type FileStore struct {
	path string
}

var _ domain.StateStore = (*FileStore)(nil)

// NewFileStore returns a store backed by path
func NewFileStore(path string) *FileStore {
	if path == "" {
		panic("production.FileStore requires a path")
	}
	return &FileStore{path: path}
}

// Path returns the data file location
func (f *FileStore) Path() string { return f.path }

// Load reads the document, a missing file is the default document
func (f *FileStore) Load(_ context.Context) (domain.Document, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultDocument(), nil
	}
	if err != nil {
		return domain.DefaultDocument(), perr.Wrapf(err, perr.ErrorCodeStorage, "read %s", f.path)
	}
	return domain.DecodeDocument(b)
}

// Save overwrites the file with doc
func (f *FileStore) Save(_ context.Context, doc domain.Document) (err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode production state")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write %s", f.path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write %s", f.path)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeStorage, "sync %s", f.path)
	}
	if err = tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write %s", f.path)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "replace %s", f.path)
	}
	return nil
}
