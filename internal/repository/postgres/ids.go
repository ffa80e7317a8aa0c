package postgres

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newID returns a 24 hex character identifier, the same shape clients
// already validate ids against.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}
