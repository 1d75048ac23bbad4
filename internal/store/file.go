package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/entity"
)

// UntitledName is shown for catalog entries whose file carries no name or
// does not decode at all.
const UntitledName = "Без названия"

// fallbackFilename is used when a record is persisted with an empty name.
const fallbackFilename = "contact_data"

// filenameSanitizer replaces every character that is unsafe in a filename.
var filenameSanitizer = strings.NewReplacer(
	`\`, "_", "/", "_", "*", "_", "?", "_", ":", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeName derives a storage-safe base filename from a record name.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallbackFilename
	}
	return filenameSanitizer.Replace(name)
}

// FileStore keeps one human-readable JSON document per record inside a fixed
// catalog directory. Filenames are derived from the record name, so two
// records with the same sanitized name collide and the later save wins. That
// overwrite is silent and intended; callers wanting uniqueness must rename.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

// Save writes the record as <sanitized-name>.json and returns that filename
// as the record's identifier. An existing file with the same name is
// overwritten without warning.
func (s *FileStore) Save(_ context.Context, c entity.Contact) (string, error) {
	id := SanitizeName(c.Name) + ".json"
	if err := s.write(id, c); err != nil {
		return "", err
	}
	s.logger.Info("store.file.saved", "id", id)
	return id, nil
}

// Load reads and decodes one record.
func (s *FileStore) Load(_ context.Context, id string) (entity.Contact, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.Contact{}, common.WrapError(common.ErrNotFound, id)
		}
		return entity.Contact{}, common.WrapError(err, "read "+id)
	}
	var c entity.Contact
	if err := json.Unmarshal(b, &c); err != nil {
		return entity.Contact{}, common.WrapError(common.ErrCorrupt, id)
	}
	if c.Phones == nil {
		c.Phones = []string{}
	}
	return c, nil
}

// Update is a full overwrite of the file's contents, not a merge. The
// identifier stays put even if the record's name changed.
func (s *FileStore) Update(_ context.Context, id string, c entity.Contact) error {
	if _, err := os.Stat(filepath.Join(s.dir, id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.WrapError(common.ErrNotFound, id)
		}
		return common.WrapError(err, "stat "+id)
	}
	if err := s.write(id, c); err != nil {
		return err
	}
	s.logger.Info("store.file.updated", "id", id)
	return nil
}

// Delete removes the record's file.
func (s *FileStore) Delete(_ context.Context, id string) error {
	err := os.Remove(filepath.Join(s.dir, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.WrapError(common.ErrNotFound, id)
		}
		return common.WrapError(err, "remove "+id)
	}
	s.logger.Info("store.file.deleted", "id", id)
	return nil
}

// List scans the catalog directory for *.json files, sorted by filename.
// Corrupt files are still listed, tagged unreadable, so the presentation
// layer can show that something is there but damaged.
func (s *FileStore) List(_ context.Context) ([]CatalogEntry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, common.WrapError(err, "read catalog dir")
	}
	var entries []CatalogEntry
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		e := CatalogEntry{ID: de.Name(), DisplayName: UntitledName}
		b, err := os.ReadFile(filepath.Join(s.dir, de.Name()))
		if err != nil {
			e.Unreadable = true
			entries = append(entries, e)
			continue
		}
		var c entity.Contact
		if err := json.Unmarshal(b, &c); err != nil {
			e.Unreadable = true
			entries = append(entries, e)
			continue
		}
		if strings.TrimSpace(c.Name) != "" {
			e.DisplayName = c.Name
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// write encodes the record into memory first so a failed encode never leaves
// a partial file behind. 2-space indent, non-ASCII and HTML left unescaped.
func (s *FileStore) write(id string, c entity.Contact) error {
	if c.Phones == nil {
		c.Phones = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return common.WrapError(err, "encode "+id)
	}
	if err := os.WriteFile(filepath.Join(s.dir, id), buf.Bytes(), 0o644); err != nil {
		s.logger.Error("store.file.write_failed", "id", id, "error", err)
		return common.WrapError(err, "write "+id)
	}
	return nil
}
