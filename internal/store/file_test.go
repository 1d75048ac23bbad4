package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/entity"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(dir, nil), dir
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Acme_Co", SanitizeName("Acme/Co"))
	assert.Equal(t, "_____________", SanitizeName(`\/*?:"<>|\/*?`))
	assert.Equal(t, "contact_data", SanitizeName(""))
	assert.Equal(t, "contact_data", SanitizeName("   "))
	assert.Equal(t, "ООО Ромашка", SanitizeName("ООО Ромашка"))
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rec := entity.Contact{
		Name:        "ООО Ромашка",
		Phones:      []string{"+7 495 123-45-67", "+7 495 765-43-21"},
		Email:       "info@romashka.example",
		Address:     "Москва, ул. Ленина, 1",
		Description: "цветы и подарки",
	}

	id, err := s.Save(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "ООО Ромашка.json", id)

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Phones, got.Phones)
	assert.Equal(t, rec.Email, got.Email)
	assert.Equal(t, rec.Address, got.Address)
	assert.Equal(t, rec.Description, got.Description)
}

// TestFileSaveSanitizesFilename checks the documented character replacement:
// name "Acme/Co" lands in Acme_Co.json.
func TestFileSaveSanitizesFilename(t *testing.T) {
	s, dir := newTestStore(t)

	id, err := s.Save(context.Background(), entity.Contact{Name: "Acme/Co"})
	require.NoError(t, err)
	assert.Equal(t, "Acme_Co.json", id)

	_, err = os.Stat(filepath.Join(dir, "Acme_Co.json"))
	assert.NoError(t, err)
}

// TestFileSaveCollisionOverwrites pins the intended-but-hazardous behavior:
// two records whose names sanitize to the same filename collide, and the
// second save silently replaces the first.
func TestFileSaveCollisionOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := entity.Contact{Name: "Acme/Co", Email: "first@acme.example"}
	second := entity.Contact{Name: `Acme\Co`, Email: "second@acme.example"}

	id1, err := s.Save(ctx, first)
	require.NoError(t, err)
	id2, err := s.Save(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	got, err := s.Load(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "second@acme.example", got.Email)
}

// TestFileSaveEmptyName checks the literal fallback filename.
func TestFileSaveEmptyName(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.Save(context.Background(), entity.Contact{Description: "raw model text"})
	require.NoError(t, err)
	assert.Equal(t, "contact_data.json", id)
}

// TestFileDocumentShape checks the on-disk document: exactly the five content
// fields, 2-space indent, non-ASCII left unescaped.
func TestFileDocumentShape(t *testing.T) {
	s, dir := newTestStore(t)

	_, err := s.Save(context.Background(), entity.Contact{
		ID:     42,
		Name:   "Кафе «Уют»",
		Phones: []string{"+7 812 000-00-00"},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "Кафе «Уют».json"))
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "\n  \"name\": \"Кафе «Уют»\"")
	assert.Contains(t, content, `"phones"`)
	assert.Contains(t, content, `"email"`)
	assert.Contains(t, content, `"address"`)
	assert.Contains(t, content, `"description"`)
	assert.NotContains(t, content, `"id"`, "backend-assigned fields stay out of card files")
	assert.NotContains(t, content, `\u`, "non-ASCII must not be escaped")
}

func TestFileLoadNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load(context.Background(), "nope.json")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileLoadCorrupt(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0o644))

	_, err := s.Load(context.Background(), "bad.json")
	assert.ErrorIs(t, err, common.ErrCorrupt)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestFileUpdateIsFullOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, entity.Contact{
		Name:   "Acme",
		Phones: []string{"+1"},
		Email:  "old@acme.example",
	})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, id, entity.Contact{Name: "Acme"}))

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", got.Email, "update replaces, never merges")
	assert.Equal(t, []string{}, got.Phones)
}

func TestFileUpdateMissing(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Update(context.Background(), "ghost.json", entity.Contact{Name: "X"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, entity.Contact{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Load(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, id), common.ErrNotFound)
}

// TestFileListWithCorruptEntry checks that a damaged file is listed and
// tagged unreadable instead of being skipped or raising.
func TestFileListWithCorruptEntry(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, entity.Contact{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0o644))
	// a non-json file is not part of the catalog
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// sorted by filename: Acme.json before broken.json
	assert.Equal(t, "Acme.json", entries[0].ID)
	assert.Equal(t, "Acme", entries[0].DisplayName)
	assert.False(t, entries[0].Unreadable)

	assert.Equal(t, "broken.json", entries[1].ID)
	assert.Equal(t, UntitledName, entries[1].DisplayName)
	assert.True(t, entries[1].Unreadable)
}

func TestFileListUntitledForMissingName(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anon.json"), []byte(`{"email":"a@b.c"}`), 0o644))

	entries, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, UntitledName, entries[0].DisplayName)
	assert.False(t, entries[0].Unreadable)
}

func TestFileListMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing"), nil)

	_, err := s.List(context.Background())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
