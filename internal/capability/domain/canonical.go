package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// CanonicalBytes returns the byte-stable serialization the issuer signs.
// Variable-length fields are length-prefixed to prevent ambiguity. The ID
// and Signature fields are excluded: both are derived from this output.
func (t *Token) CanonicalBytes() []byte {
	buf := make([]byte, 0, 512)

	buf = appendLengthPrefixed(buf, []byte(t.Issuer))
	buf = appendLengthPrefixed(buf, []byte(t.Audience))

	buf = appendUint64(buf, uint64(len(t.Scope)))
	for _, pattern := range t.Scope {
		buf = appendLengthPrefixed(buf, []byte(pattern))
	}

	buf = appendUint64(buf, uint64(len(t.Actions)))
	for _, action := range t.Actions {
		buf = appendLengthPrefixed(buf, []byte(action))
	}

	if t.ExpiresAt != nil {
		buf = appendUint64(buf, 1)
		buf = appendUint64(buf, uint64(t.ExpiresAt.UnixNano()))
	} else {
		buf = appendUint64(buf, 0)
	}
	buf = appendUint64(buf, uint64(t.IssuedAt.UnixNano()))
	buf = appendUint64(buf, t.KeyEpoch)
	buf = appendLengthPrefixed(buf, []byte(t.Algorithm))
	buf = appendLengthPrefixed(buf, []byte(t.ParentID))

	return buf
}

// ComputeID returns the token identifier: the hex sha256 of the canonical
// bytes. The id is content-derived, so a tampered token no longer matches
// its own id.
func (t *Token) ComputeID() string {
	sum := sha256.Sum256(t.CanonicalBytes())
	return hex.EncodeToString(sum[:])
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// appendUint64 adds an 8-byte big-endian integer.
func appendUint64(buf []byte, v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)
	return append(buf, value...)
}
