package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<job>:<sha256 of the JSON-encoded parts>". The parts are
// the key version and the job options, so formatted traces, root, zoom,
// size and seed all change the key.
func hashKey(job string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return job + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. The CLI uses it to key animations
// by the bytes of their description file, and FileCache to name entries.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
