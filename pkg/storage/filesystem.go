package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
)

const defaultMode fs.FileMode = 0644

type filesystem struct {
	fs       afero.Fs
	basePath string
	fileMode fs.FileMode
	dirMode  fs.FileMode
	logger   *slog.Logger
}

// New creates filesystem storage rooted at cfg.BasePath on the host OS.
// The base path is resolved to an absolute path during construction.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	mode := cfg.FileModeValue()
	if mode == 0 {
		mode = defaultMode
	}

	return newFilesystem(afero.NewOsFs(), absPath, mode, logger), nil
}

// NewWithFs creates storage rooted at basePath on an arbitrary afero filesystem
// using 0644 file permissions.
func NewWithFs(afs afero.Fs, basePath string, logger *slog.Logger) System {
	return newFilesystem(afs, basePath, defaultMode, logger)
}

// newFilesystem derives directory permissions from mode by adding the
// execute bit wherever read is granted.
func newFilesystem(afs afero.Fs, basePath string, mode fs.FileMode, logger *slog.Logger) *filesystem {
	return &filesystem{
		fs:       afs,
		basePath: filepath.Clean(basePath),
		fileMode: mode,
		dirMode:  mode | (mode&0444)>>2,
		logger:   logger.With("system", "storage"),
	}
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.basePath)

	lc.OnStartup(func() {
		if err := f.fs.MkdirAll(f.basePath, f.dirMode); err != nil {
			f.logger.Error("storage initialization failed", "error", err)
			return
		}
		f.logger.Info("storage directory initialized")
	})

	return nil
}

func (f *filesystem) Store(ctx context.Context, key string, data []byte) error {
	path, err := f.fullPath(key)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := f.fs.MkdirAll(filepath.Dir(path), f.dirMode); err != nil {
		return fmt.Errorf("create directory: %w", mapFsError(err))
	}

	if err := f.writeAtomic(path, data); err != nil {
		return err
	}

	return nil
}

// writeAtomic writes data to a hidden temp file beside path and renames it
// into place, so readers never see a partial file under a public name.
func (f *filesystem) writeAtomic(path string, data []byte) error {
	tmp, err := afero.TempFile(f.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", mapFsError(err))
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = f.fs.Chmod(tmpPath, f.fileMode)
	}
	if err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", mapFsError(err))
	}

	if err := f.fs.Rename(tmpPath, path); err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", mapFsError(err))
	}

	return nil
}

func (f *filesystem) Retrieve(ctx context.Context, key string) ([]byte, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if mapped := mapFsError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (f *filesystem) Stat(ctx context.Context, key string) (fs.FileInfo, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}

	info, err := f.fs.Stat(path)
	if err != nil {
		if mapped := mapFsError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return nil, ErrNotFound
	}

	return info, nil
}

func (f *filesystem) Delete(ctx context.Context, key string) error {
	path, err := f.fullPath(key)
	if err != nil {
		return err
	}

	if err := f.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("remove file: %w", err)
	}

	f.pruneDir(filepath.Dir(path))
	return nil
}

func (f *filesystem) Validate(ctx context.Context, key string) (bool, error) {
	_, err := f.Stat(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (f *filesystem) pruneDir(dir string) {
	if dir == f.basePath || !strings.HasPrefix(dir, f.basePath+string(filepath.Separator)) {
		return
	}

	empty, err := afero.IsEmpty(f.fs, dir)
	if err != nil {
		f.logger.Warn("failed to read directory for cleanup", "dir", dir, "error", err)
		return
	}

	if empty {
		if err := f.fs.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
		}
	}
}

func (f *filesystem) fullPath(key string) (string, error) {
	if key == "" || strings.ContainsRune(key, 0) {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || cleaned == ".." || filepath.IsAbs(cleaned) ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(f.basePath, cleaned)
	if !strings.HasPrefix(fullPath, f.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	return fullPath, nil
}

func mapFsError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return err
	}
}
