package arrange

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/utkarsh5026/boondh/fsutil"
)

func TestFileType(t *testing.T) {
	tests := map[string]string{
		"xy.jpg":         "jpg",
		"abc.csv":        "csv",
		"archive.tar.gz": "gz",
		".gitignore":     UnknownType,
		"Makefile":       UnknownType,
		"trailing.":      UnknownType,
		"dir/report.pdf": "pdf",
		".env.local":     "local",
	}
	for name, want := range tests {
		assert.Equal(t, want, FileType(name), name)
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func TestMoveFilesToTypeSubDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf", "c.jpg", "README", ".gitignore")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0o755))

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	o := New(WithLogger(zap.New(core)), WithProgress(&out))

	moved, err := o.MoveFilesToTypeSubDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, moved)
	assert.Equal(t, 5, logs.FilterMessage("moved").Len())

	assert.FileExists(t, filepath.Join(dir, "pdf_", "a.pdf"))
	assert.FileExists(t, filepath.Join(dir, "pdf_", "b.pdf"))
	assert.FileExists(t, filepath.Join(dir, "jpg_", "c.jpg"))
	assert.FileExists(t, filepath.Join(dir, "unk_", "README"))
	assert.FileExists(t, filepath.Join(dir, "unk_", ".gitignore"))
	assert.DirExists(t, filepath.Join(dir, "notes"))

	subDirs, err := o.TypeSubDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"pdf": filepath.Join(dir, "pdf_"),
		"jpg": filepath.Join(dir, "jpg_"),
		"unk": filepath.Join(dir, "unk_"),
	}, subDirs)

	moved, err = o.MoveFilesToTypeSubDirs(dir)
	require.NoError(t, err)
	assert.Zero(t, moved, "second run has nothing left to move")
}

func TestCreateTypeSubDirsReusesExisting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt", "b.go")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "txt_"), 0o755))

	subDirs, err := New().CreateTypeSubDirs(dir)
	require.NoError(t, err)
	assert.Len(t, subDirs, 2)
	assert.DirExists(t, filepath.Join(dir, "go_"))
}

func TestCustomSuffix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.txt")

	moved, err := New(WithSuffix("-files")).MoveFilesToTypeSubDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
	assert.FileExists(t, filepath.Join(dir, "txt-files", "a.txt"))
}

func TestEmptySubDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"empty1", "empty2", "full"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
	}
	touch(t, filepath.Join(dir, "full"), "keep.txt")
	touch(t, dir, "loose.txt")

	o := New()
	empty, err := o.ListEmptySubDirs(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "empty1"), filepath.Join(dir, "empty2")}, empty)

	removed, err := o.RemoveEmptySubDirs(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, empty, removed)
	assert.NoDirExists(t, filepath.Join(dir, "empty1"))
	assert.DirExists(t, filepath.Join(dir, "full"))
}

func TestMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	o := New()

	_, err := o.MoveFilesToTypeSubDirs(missing)
	assert.ErrorIs(t, err, fsutil.ErrDirNotFound)
	_, err = o.ListEmptySubDirs(missing)
	assert.ErrorIs(t, err, fsutil.ErrDirNotFound)
}
