package crypto

import (
	"encoding/hex"
	"encoding/json"
)

// Hex returns lowercase hex without separators.
func Hex(b []byte) string { return hex.EncodeToString(b) }

// CompactJWK renders a JWK as JSON shortened to 15 leading and 15 trailing
// characters, the way the peer panels show keys.
func CompactJWK(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	s := string(b)
	if len(s) <= 30 {
		return s
	}
	return s[:15] + "..." + s[len(s)-15:]
}
