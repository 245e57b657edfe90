// ABOUTME: ULID generation helper using crypto/rand for card identifiers.
// ABOUTME: Centralizes ID creation so all code uses the same entropy source.
package card

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID using crypto/rand entropy.
func NewID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}
