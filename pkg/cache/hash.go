package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<kind>:<sha256 of the JSON-encoded parts>". Parts go
// through JSON so structs like [PageKeyOpts] hash by value.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	// encoding []any of plain values and tagged structs cannot fail
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. The server keys rendered pages by
// the hash of the catalog they were rendered from.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first n hex characters of [Hash], or the whole hash
// when n is out of range.
func ShortHash(data []byte, n int) string {
	h := Hash(data)
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}
