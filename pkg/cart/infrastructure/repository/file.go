package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"storefront/pkg/cart/domain/model"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileRepository keeps each snapshot in <dir>/<name>.json.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) Load(_ context.Context, name string) (model.Snapshot, error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Snapshot{}, model.ErrSnapshotNotFound
		}
		return model.Snapshot{}, errors.Wrapf(err, "read snapshot %q", name)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "decode snapshot %q", name)
	}
	return snapshot, nil
}

func (r *FileRepository) Save(_ context.Context, name string, snapshot model.Snapshot) error {
	if snapshot.Items == nil {
		snapshot.Items = []model.LineItem{}
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Wrapf(err, "create snapshot dir %q", r.dir)
	}

	tmp, err := os.CreateTemp(r.dir, ".snapshot-*")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp snapshot")
	}

	return errors.Wrapf(os.Rename(tmp.Name(), r.path(name)), "replace snapshot %q", name)
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.dir, unsafeNameChars.ReplaceAllString(name, "_")+".json")
}
