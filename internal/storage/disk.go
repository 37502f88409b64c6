package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"balangay/pkg/platform/sentinel"
)

// Disk stores blobs under a root directory, one subdirectory per namespace.
type Disk struct {
	root string
}

// NewDisk constructs a disk blob store rooted at dir.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Disk{root: dir}, nil
}

func (d *Disk) Put(_ context.Context, namespace string, data io.Reader) (string, error) {
	if !KnownNamespace(namespace) {
		return "", fmt.Errorf("unknown storage namespace %q", namespace)
	}
	dir := filepath.Join(d.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create namespace dir: %w", err)
	}

	name := uuid.New().String()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return namespace + "/" + name, nil
}

func (d *Disk) Get(_ context.Context, path string) ([]byte, error) {
	local, err := d.localPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(local)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (d *Disk) Exists(_ context.Context, path string) (bool, error) {
	local, err := d.localPath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(local)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return true, nil
}

func (d *Disk) Delete(_ context.Context, path string) error {
	local, err := d.localPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// localPath maps an opaque path onto the filesystem, rejecting anything that
// would escape the storage root.
func (d *Disk) localPath(path string) (string, error) {
	namespace, name, ok := strings.Cut(path, "/")
	if !ok || !KnownNamespace(namespace) || name == "" ||
		strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", sentinel.ErrNotFound
	}
	return filepath.Join(d.root, namespace, name), nil
}
