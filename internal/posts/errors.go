package posts

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) when a slug is not part of the collection.
var ErrNotFound = errors.New("post not found")

// FilesystemError reports a failure to list the content directory or read
// one of its files. It aborts the whole listing.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
