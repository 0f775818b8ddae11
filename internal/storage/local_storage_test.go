package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "public")

	storage, err := NewLocalStorage(baseDir)
	require.NoError(t, err)
	require.NotNil(t, storage)
	require.Equal(t, baseDir, storage.basePath)

	_, err = os.Stat(baseDir)
	require.NoError(t, err, "Base directory should be created")
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name := "index.html"
	content := "<html>fake accounts</html>"

	err = storage.Save(name, strings.NewReader(content))
	require.NoError(t, err)

	expectedPath := filepath.Join(storage.basePath, name)
	fileInfo, err := os.Stat(expectedPath)
	require.NoError(t, err, "File should exist after save")
	require.Equal(t, int64(len(content)), fileInfo.Size())

	file, err := storage.Get(name)
	require.NoError(t, err)
	retrieved, err := io.ReadAll(file)
	require.NoError(t, err)
	file.Close()
	require.Equal(t, content, string(retrieved))

	err = storage.Save(name, strings.NewReader("replaced"))
	require.NoError(t, err)
	data, err := os.ReadFile(expectedPath)
	require.NoError(t, err)
	require.Equal(t, "replaced", string(data))

	entries, err := os.ReadDir(storage.basePath)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files should not be left behind")

	err = storage.Delete(name)
	require.NoError(t, err)
	_, err = os.Stat(expectedPath)
	require.True(t, os.IsNotExist(err), "File should not exist after delete")
}

func TestLocalStorage_GetNonExistent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get("index.html")
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocalStorage_DeleteNonExistent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Delete("index.html"))
}

func TestLocalStorage_RejectsEscapingNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "../index.html", "/etc/passwd"} {
		require.Error(t, storage.Save(name, strings.NewReader("x")), name)
		_, err := storage.Get(name)
		require.Error(t, err, name)
	}
}
