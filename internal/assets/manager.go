// Package assets manages product preview images. Replacing a product with a
// data-URI previewImage stores the decoded image as a file and rewrites the
// field to the file's public URL; deleting a product removes its file.
// File writes and removals run on a keyed background queue.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/product-catalog/internal/products"
	"github.com/JaimeStill/product-catalog/pkg/storage"
)

// Store is the subset of the product record store the manager drives.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (*products.Product, error)
	Replace(ctx context.Context, id uuid.UUID, cmd products.ReplaceCommand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Config locates image files in storage and on the public URL space.
type Config struct {
	Directory   string
	RoutePrefix string
}

// Manager implements products.Assets over a file store and a task queue.
type Manager struct {
	store    Store
	files    storage.System
	queue    *Queue
	reporter Reporter
	cfg      Config
	logger   *slog.Logger
}

// New creates an image asset manager.
func New(store Store, files storage.System, queue *Queue, reporter Reporter, cfg Config, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		files:    files,
		queue:    queue,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger.With("system", "assets"),
	}
}

// ReplaceRecord replaces the product. A data-URI previewImage is decoded
// and validated synchronously; the file write and the record replace then
// run on the queue, write first, and the call returns once the task is
// accepted.
func (m *Manager) ReplaceRecord(ctx context.Context, id uuid.UUID, cmd products.ReplaceCommand, origin string) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !products.IsDataURI(cmd.PreviewImage) {
		return m.replacePlain(ctx, id, cmd)
	}

	img, err := ParseDataURI(cmd.PreviewImage)
	if err != nil {
		return err
	}

	if _, err := m.store.Find(ctx, id); err != nil {
		return err
	}

	filename := Filename(id, img.Ext)
	err = m.queue.Enqueue(ctx, id, OpReplaceRecord, func(ctx context.Context) error {
		return m.replaceWithImage(ctx, id, cmd, img.Data, filename, origin)
	})
	if err != nil {
		return fmt.Errorf("schedule image write: %w", err)
	}

	m.logger.Info("image write scheduled", "id", id, "filename", filename, "bytes", len(img.Data))
	return nil
}

// DeleteRecord schedules removal of the product's image file and deletes
// the record. File removal is submitted without waiting, so a busy queue
// never blocks or fails the record delete.
func (m *Manager) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	p, err := m.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if p.PreviewImage != "" {
		m.scheduleDelete(id, p.PreviewImage)
	}

	return m.store.Delete(ctx, id)
}

// ServeImage returns the stored image with the given filename.
func (m *Manager) ServeImage(ctx context.Context, filename string) (*StoredImage, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	key := m.key(filename)

	info, err := m.files.Stat(ctx, key)
	if err != nil {
		return nil, m.mapStorageError(err, filename)
	}

	data, err := m.files.Retrieve(ctx, key)
	if err != nil {
		return nil, m.mapStorageError(err, filename)
	}

	return &StoredImage{
		Name:    filename,
		ModTime: info.ModTime(),
		Data:    data,
	}, nil
}

// URL returns the public URL of filename for requests from origin.
func (m *Manager) URL(origin, filename string) string {
	return strings.TrimSuffix(origin, "/") + m.cfg.RoutePrefix + "/" + filename
}

// replacePlain replaces the record synchronously. A stored file the record
// no longer points at is removed in the background.
func (m *Manager) replacePlain(ctx context.Context, id uuid.UUID, cmd products.ReplaceCommand) error {
	p, err := m.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := m.store.Replace(ctx, id, cmd); err != nil {
		return err
	}

	stale, ok := m.storedFile(p.PreviewImage, id)
	if !ok {
		return nil
	}
	if current, ok := m.storedFile(cmd.PreviewImage, id); ok && current == stale {
		return nil
	}

	m.scheduleCleanup(id, stale)
	return nil
}

func (m *Manager) replaceWithImage(ctx context.Context, id uuid.UUID, cmd products.ReplaceCommand, data []byte, filename, origin string) error {
	var previous string
	if p, err := m.store.Find(ctx, id); err == nil {
		previous = p.PreviewImage
	}

	key := m.key(filename)
	written := false

	if err := m.files.Store(ctx, key, data); err != nil {
		m.reporter.Report(OpWriteImage, id, err)
	} else {
		cmd.PreviewImage = m.URL(origin, filename)
		written = true
	}

	if err := m.store.Replace(ctx, id, cmd); err != nil {
		if written {
			if delErr := m.files.Delete(ctx, key); delErr != nil {
				m.reporter.Report(OpDeleteImage, id, delErr)
			}
		}
		return err
	}

	if written {
		m.logger.Info("preview image stored", "id", id, "filename", filename)
	}

	// On the write-failure path the record now holds the data-URI, so any
	// previously stored file is unreferenced as well.
	if stale, ok := m.storedFile(previous, id); ok && (!written || stale != filename) {
		if err := m.files.Delete(ctx, m.key(stale)); err != nil {
			m.reporter.Report(OpDeleteImage, id, err)
		}
	}

	return nil
}

func (m *Manager) scheduleDelete(id uuid.UUID, previewImage string) {
	if products.IsDataURI(previewImage) {
		m.logger.Debug("preview image was never stored", "id", id)
		return
	}

	filename := FilenameFromURL(previewImage)

	err := m.queue.TryEnqueue(id, OpDeleteImage, func(ctx context.Context) error {
		if err := ValidateFilename(filename); err != nil {
			return err
		}
		return m.files.Delete(ctx, m.key(filename))
	})
	if err != nil {
		m.reporter.Report(OpEnqueue, id, err)
	}
}

// scheduleCleanup removes filename once the queued work for id has run,
// unless the record points at it again by then.
func (m *Manager) scheduleCleanup(id uuid.UUID, filename string) {
	err := m.queue.TryEnqueue(id, OpDeleteImage, func(ctx context.Context) error {
		p, err := m.store.Find(ctx, id)
		switch {
		case err == nil:
			if current, ok := m.storedFile(p.PreviewImage, id); ok && current == filename {
				return nil
			}
		case !errors.Is(err, products.ErrNotFound):
			return err
		}
		return m.files.Delete(ctx, m.key(filename))
	})
	if err != nil {
		m.reporter.Report(OpEnqueue, id, err)
	}
}

// storedFile returns the filename when previewImage is a URL under the
// image route naming a file owned by id.
func (m *Manager) storedFile(previewImage string, id uuid.UUID) (string, bool) {
	if previewImage == "" || products.IsDataURI(previewImage) {
		return "", false
	}

	u, err := url.Parse(previewImage)
	if err != nil {
		return "", false
	}

	dir, filename := path.Split(u.Path)
	if path.Clean(dir) != path.Clean(m.cfg.RoutePrefix) {
		return "", false
	}
	if ValidateFilename(filename) != nil || !ownedBy(filename, id) {
		return "", false
	}
	return filename, true
}

func (m *Manager) key(filename string) string {
	return path.Join(m.cfg.Directory, filename)
}

func (m *Manager) mapStorageError(err error, filename string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrImageNotFound, filename)
	case errors.Is(err, storage.ErrInvalidKey):
		return fmt.Errorf("%w: %s", ErrInvalidFilename, filename)
	}
	return err
}

// ValidateFilename accepts a single path segment that is not hidden.
// Hidden names cover ".", ".." and in-progress temp files.
func ValidateFilename(name string) error {
	switch {
	case name == "", strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}

// FilenameFromURL returns the last path segment of an image URL.
func FilenameFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}

	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func ownedBy(filename string, id uuid.UUID) bool {
	return strings.HasPrefix(filename, "preview_"+id.String()+".")
}
