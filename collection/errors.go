// ABOUTME: Typed recoverable errors for positional table operations.
// ABOUTME: NotFoundError for out-of-range indices, NothingRemovedError for deletions that matched nothing.
package collection

import "fmt"

// NotFoundError reports an index with no record behind it. Returned by Get
// and Update; never fatal.
type NotFoundError struct {
	Index int
	Len   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record at index %d (table has %d)", e.Index, e.Len)
}

// NothingRemovedError reports a Delete call whose index set matched no
// records.
type NothingRemovedError struct {
	Requested []int
}

func (e *NothingRemovedError) Error() string {
	if len(e.Requested) == 0 {
		return "no records removed: empty index set"
	}
	return fmt.Sprintf("no records removed: none of %d requested indices matched", len(e.Requested))
}
