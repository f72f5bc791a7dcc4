package stats

import (
	"context"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persists a Summary
type Store interface {
	Save(ctx context.Context, s *Summary) error
}

// JSONStore writes the summary as an indented JSON document
type JSONStore struct {
	Path string
}

// NewJSONStore returns a store writing to path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Save writes the summary to a temporary file next to Path and renames it
// into place so readers never see a partial document
func (j *JSONStore) Save(ctx context.Context, s *Summary) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")

	if err != nil {
		return errors.Wrap(err, "encoding summary")
	}

	dir := filepath.Dir(j.Path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating summary directory")
	}

	tmp, err := os.CreateTemp(dir, ".summary-*.json")

	if err != nil {
		return errors.Wrap(err, "creating temporary summary")
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing summary")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writing summary")
	}

	return errors.Wrap(os.Rename(tmp.Name(), j.Path), "renaming summary")
}

// LoadJSON reads a summary written by JSONStore
func LoadJSON(path string) (*Summary, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, errors.Wrap(err, "reading summary")
	}

	var s Summary

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return &s, nil
}
