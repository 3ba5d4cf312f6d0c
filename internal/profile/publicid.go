package profile

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// publicIDBytes is the entropy behind a public token. 24 random bytes (192
// bits) encode to 32 URL-safe characters; collisions are statistically
// negligible, and the storage-layer unique index catches the rest.
const publicIDBytes = 24

// NewPublicID mints a sharing token. The token is the only credential that
// grants read access to a profile, so it is drawn from crypto/rand and
// carries nothing derived from the account's ID, email or name.
func NewPublicID() (string, error) {
	b := make([]byte, publicIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate public id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
