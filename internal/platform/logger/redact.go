package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
)

const redacted = "[REDACTED]"

// Account profile columns that identify a person. Matched exactly.
var personalFields = map[string]struct{}{
	"email":                  {},
	"legal_mail":             {},
	"phone":                  {},
	"mobile_phone":           {},
	"social_security_number": {},
	"vat_number":             {},
	"first_name":             {},
	"last_name":              {},
	"street_name":            {},
	"street_number":          {},
}

// Credential-like keys. Matched as substrings so "access_token" or "jwt_secret_key" are caught.
var credentialFragments = []string{"token", "authorization", "password", "secret"}

// Keys whose values stay correlatable across lines but never appear in clear.
var hashedFields = map[string]struct{}{
	"account_id": {},
}

type redaction struct {
	enabled bool
	salt    string
}

var policy atomic.Pointer[redaction]

func init() {
	policy.Store(&redaction{enabled: true})
}

// SetRedaction switches log value redaction on or off. salt prefixes hashed identifiers.
func SetRedaction(enabled bool, salt string) {
	policy.Store(&redaction{enabled: enabled, salt: strings.TrimSpace(salt)})
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !policy.Load().enabled {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, sanitizeValue(normalizeKey(key), kv[i+1]))
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func sanitizeValue(key string, val interface{}) interface{} {
	if key == "" {
		return val
	}
	if isRedactKey(key) {
		return redacted
	}
	if _, ok := hashedFields[key]; ok {
		return hashValue(val)
	}
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = sanitizeValue(normalizeKey(k), inner)
		}
		return out
	case string:
		if looksLikeJWT(v) {
			return redacted
		}
	}
	return val
}

func isRedactKey(key string) bool {
	if _, ok := personalFields[key]; ok {
		return true
	}
	for _, frag := range credentialFragments {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

func hashValue(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	if salt := policy.Load().salt; salt != "" {
		_, _ = h.Write([]byte(salt))
	}
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
