// Package etag computes content fingerprints for HTTP cache validation.
//
// A fingerprint is the SHA-256 of the canonical JSON encoding of a value:
// two values that are structurally equal always get the same tag, no matter
// how their maps were built.
package etag

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Header names used for cache validation.
const (
	HeaderETag        = "ETag"
	HeaderIfNoneMatch = "If-None-Match"
)

// Size is the length of a generated tag in hex characters.
const Size = sha256.Size * 2

// Generate returns the hex fingerprint of v.
//
// v must be JSON serializable. The value is encoded, decoded back into its
// generic form (numbers kept as json.Number so no precision is lost) and
// encoded again; encoding/json writes map keys in sorted order, which makes
// the second encoding canonical.
func Generate(v any) (string, error) {
	canonical, err := Canonicalize(v)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Canonicalize returns the canonical JSON encoding of v.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("etag: encoding value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("etag: decoding value: %w", err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("etag: canonical encoding: %w", err)
	}
	return canonical, nil
}

// Quote formats a tag as a strong entity-tag header value.
func Quote(tag string) string {
	return `"` + tag + `"`
}

// Match reports whether an If-None-Match header value matches tag.
//
// The header may be "*", a single entity-tag or a comma separated list.
// Weak validators ("W/" prefix) compare equal to their strong form, as
// If-None-Match uses the weak comparison function.
func Match(ifNoneMatch, tag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" || tag == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}

	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if strings.Trim(candidate, `"`) == tag {
			return true
		}
	}
	return false
}
