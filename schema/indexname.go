package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// maxIndexNameLength is the engine's hard identifier limit.
const maxIndexNameLength = 128

// hashSuffixLength covers the separator plus eight hex digits.
const hashSuffixLength = 9

// GenerateIndexName builds a deterministic index name of the form
// {prefix}_{table}_{field1}_{field2}_... with an AK prefix for alternate
// keys and IX otherwise. Names that exceed the engine limit are truncated
// and suffixed with eight hex digits of the SHA-256 of the full,
// untruncated name, so two long names that agree on a prefix still come
// out distinct. The truncation point is a plain byte offset and may fall
// inside a field name; the hash keeps the result unique regardless.
func GenerateIndexName(alternateKey bool, tableName string, fields []string) string {
	prefix := "IX"
	if alternateKey {
		prefix = "AK"
	}

	parts := append([]string{prefix, tableName}, fields...)
	base := strings.Join(parts, "_")
	if len(base) <= maxIndexNameLength {
		return base
	}

	sum := sha256.Sum256([]byte(base))
	suffix := hex.EncodeToString(sum[:])[:hashSuffixLength-1]
	return base[:maxIndexNameLength-hashSuffixLength] + "_" + suffix
}
