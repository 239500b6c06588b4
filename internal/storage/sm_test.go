package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, CreateFile(path, 3))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3*PageSize), info.Size())

	err = CreateFile(path, 1)
	require.ErrorIs(t, err, ErrFileExists)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3*PageSize), info.Size())
}

func TestFileStore_ReadWritePage(t *testing.T) {
	path := newTestFile(t, 2)

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	defer fs.Close()

	src := make([]byte, PageSize)
	for i := range src {
		src[i] = byte(i)
	}
	require.NoError(t, fs.WritePage(1, src))

	dst := make([]byte, PageSize)
	require.NoError(t, fs.ReadPage(1, dst))
	assert.Equal(t, src, dst)

	require.NoError(t, fs.ReadPage(0, dst))
	assert.True(t, allBytes(dst, 0))
	require.NoError(t, fs.Sync())
}

func TestFileStore_ReadPastEOF(t *testing.T) {
	path := newTestFile(t, 1)

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	defer fs.Close()

	dst := make([]byte, PageSize)
	for i := range dst {
		dst[i] = 0xFF
	}
	require.NoError(t, fs.ReadPage(5, dst))
	assert.True(t, allBytes(dst, 0))
}

func TestFileStore_WrongBufferSize(t *testing.T) {
	path := newTestFile(t, 1)

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	defer fs.Close()

	require.Error(t, fs.ReadPage(0, make([]byte, 10)))
	require.Error(t, fs.WritePage(0, make([]byte, PageSize+1)))
}

func TestFileStore_ClosedIO(t *testing.T) {
	path := newTestFile(t, 1)

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Close())

	require.ErrorIs(t, fs.ReadPage(0, make([]byte, PageSize)), ErrStorageIO)
	require.ErrorIs(t, fs.WritePage(0, make([]byte, PageSize)), ErrStorageIO)
	_, err = fs.Size()
	require.ErrorIs(t, err, ErrStorageIO)
}
