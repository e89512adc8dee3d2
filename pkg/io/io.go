package io

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileIO is the set of file operations used to manage trace files and media destinations
type FileIO interface {
	Open(name string) (io.ReadCloser, error)
	CreateEmpty(name string) error
	Append(name string) (io.WriteCloser, error)
	MkdirAll(name string, perm os.FileMode) error
	FileExists(name string) bool
	Stat(name string) (fs.FileInfo, error)
}

var (
	_ FileIO = (*MediaFileSystem)(nil)

	ErrFileExists = errors.New("file already exists")
)

// MediaFileSystem is the default implementation of file io using the os package
type MediaFileSystem struct{}

// Open is a wrapper around os.Open
func (o *MediaFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// CreateEmpty creates a new empty file. The file must not exist yet.
func (o *MediaFileSystem) CreateEmpty(name string) error {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, name)
		}
		return err
	}

	return f.Close()
}

// Append opens an existing file for appending
func (o *MediaFileSystem) Append(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
}

// MkdirAll is a wrapper around os.MkdirAll
func (o *MediaFileSystem) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

func (o *MediaFileSystem) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat is a wrapper around os.Stat
func (o *MediaFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
