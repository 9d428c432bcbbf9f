package artifacts

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/askbook/askbook-api/pkg/logger"
)

// ErrInvalidName is returned for model names that could escape the models directory.
var ErrInvalidName = errors.New("invalid model name")

// Source downloads a remote object to a local file.
type Source interface {
	DownloadToFile(ctx context.Context, key, path string) error
}

// Fetcher copies model artifacts from blob storage to the local models directory.
// Concurrent fetches of the same name are not coordinated.
type Fetcher struct {
	src      Source
	prefix   string
	localDir string
}

func NewFetcher(src Source, remotePrefix, localDir string) *Fetcher {
	return &Fetcher{src: src, prefix: remotePrefix, localDir: localDir}
}

// ValidateName rejects empty names, dot segments and anything containing a path separator or NUL.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidName
	}
	return nil
}

// RemoteKey is the object key of the named artifact.
func (f *Fetcher) RemoteKey(name string) string { return f.prefix + name }

// LocalPath is where the named artifact is written.
func (f *Fetcher) LocalPath(name string) string { return filepath.Join(f.localDir, name) }

// Fetch downloads the named artifact, overwriting any local copy.
func (f *Fetcher) Fetch(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := f.src.DownloadToFile(ctx, f.RemoteKey(name), f.LocalPath(name)); err != nil {
		return err
	}
	logger.Infof("Model %s downloaded to %s", name, f.LocalPath(name))
	return nil
}
