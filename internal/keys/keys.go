// Package keys handles entry keys. Keys are opaque base64 text: the store
// only ever requires uniqueness and immutability, so nothing here decodes
// a key back into anything.
package keys

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Valid reports whether key is non-empty, unpadded URL-safe base64. This
// is a caller-side convenience check; the store treats keys as opaque.
func Valid(key string) bool {
	if key == "" {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(key)
	return err == nil
}

// Fresh allocates a new key: the unpadded URL-safe base64 encoding of a
// UUID v7, so keys generated for blank label sheets are unique without
// consulting the store.
func Fresh() string {
	id := uuid.Must(uuid.NewV7())
	return base64.RawURLEncoding.EncodeToString(id[:])
}
