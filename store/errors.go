// ABOUTME: Typed recoverable errors for the backing-file mirror.
// ABOUTME: FileLoadError and FileSaveError carry the path and wrapped cause; neither is fatal to the process.
package store

import "fmt"

// FileLoadError reports an unreadable or corrupt backing file. Load recovers
// by returning an empty table alongside it; callers surface a warning and
// continue.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("load collection %s: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error {
	return e.Err
}

// FileSaveError reports a failed write of the backing file. The in-memory
// table is untouched so the caller may retry.
type FileSaveError struct {
	Path string
	Err  error
}

func (e *FileSaveError) Error() string {
	return fmt.Sprintf("save collection %s: %v", e.Path, e.Err)
}

func (e *FileSaveError) Unwrap() error {
	return e.Err
}
