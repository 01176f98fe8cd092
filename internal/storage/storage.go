package storage

import (
	"io"
	"mime/multipart"
)

type FileInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Store holds the uploaded video for the lifetime of a scan session.
// Nothing here outlives the session; Delete runs on every exit path.
type Store interface {
	Save(file multipart.File, info FileInfo) (string, error)
	Open(name string) (io.ReadSeekCloser, error)
	Path(name string) string
	Delete(name string) error
}
