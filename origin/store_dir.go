package origin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"strings"
)

// DirStore serves objects from a file system.
type DirStore struct {
	fsys fs.FS
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates a store serving the files below dir.
func NewDirStore(dir string) *DirStore {
	return NewFSStore(os.DirFS(dir))
}

// NewFSStore creates a store serving the files of fsys.
func NewFSStore(fsys fs.FS) *DirStore {
	return &DirStore{fsys: fsys}
}

func (s *DirStore) Get(_ context.Context, key string) (*Object, error) {
	key, err := decodeKey(key)
	if err != nil {
		return nil, err
	}

	// cleaning a rooted path drops any ".." escaping the root
	name := strings.TrimPrefix(path.Clean("/"+key), "/")
	if name == "" {
		return nil, ErrNotFound
	}

	file, err := s.fsys.Open(name)
	if err != nil {
		return nil, mapFSError(err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, mapFSError(err)
	}

	// like S3, there are no objects for folders
	if info.IsDir() {
		file.Close()
		return nil, ErrNotFound
	}

	return &Object{
		Body:          file,
		ContentType:   contentType(name),
		ContentLength: info.Size(),
		ETag:          fmt.Sprintf(`"%x-%x"`, info.ModTime().UnixNano(), info.Size()),
		LastModified:  info.ModTime(),
	}, nil
}

func mapFSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrForbidden
	default:
		return err
	}
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}

	return "application/octet-stream"
}
