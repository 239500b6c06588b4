package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileStore is the backing store of a Pager: one flat file with no header,
// page n living at byte offset n*PageSize.
type FileStore struct {
	path string
	file *os.File
}

// OpenFileStore opens an existing file for read/write. It never creates one.
func OpenFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	return &FileStore{path: path, file: f}, nil
}

// CreateFile creates a new backing file holding pages zero-filled pages.
// It fails with ErrFileExists when path is already present.
func CreateFile(path string, pages uint32) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, FileMode0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		return fmt.Errorf("%w: create %s: %w", ErrStorageIO, path, err)
	}
	if err := f.Truncate(pageOffset(pages)); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: size %s: %w", ErrStorageIO, path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrStorageIO, path, err)
	}
	return f.Close()
}

func (fs *FileStore) Path() string { return fs.path }

// Size returns the current length of the backing file in bytes.
func (fs *FileStore) Size() (int64, error) {
	info, err := fs.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %w", ErrStorageIO, fs.path, err)
	}
	return info.Size(), nil
}

// ReadPage reads exactly one page into dst.
// If the file ends before offset+PageSize the remainder of dst is
// zero-filled, so a truncated final page reads as its bytes plus zeros.
func (fs *FileStore) ReadPage(pageNum uint32, dst []byte) error {
	if len(dst) != PageSize {
		return fmt.Errorf("dst must be exactly %d bytes", PageSize)
	}
	n, err := fs.file.ReadAt(dst, pageOffset(pageNum))
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: read page %d: %w", ErrStorageIO, pageNum, err)
	}
	clear(dst[n:])
	return nil
}

// WritePage writes exactly one page from src at the offset of pageNum.
func (fs *FileStore) WritePage(pageNum uint32, src []byte) error {
	if len(src) != PageSize {
		return fmt.Errorf("src must be exactly %d bytes", PageSize)
	}
	n, err := fs.file.WriteAt(src, pageOffset(pageNum))
	if err != nil {
		return fmt.Errorf("%w: write page %d: %w", ErrStorageIO, pageNum, err)
	}
	if n != PageSize {
		return fmt.Errorf("%w: write page %d: %w", ErrStorageIO, pageNum, io.ErrShortWrite)
	}
	return nil
}

// Sync forces written pages to stable storage.
func (fs *FileStore) Sync() error {
	if err := fs.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrStorageIO, fs.path, err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	if err := fs.file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrStorageIO, fs.path, err)
	}
	return nil
}
