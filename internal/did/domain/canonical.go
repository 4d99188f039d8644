package domain

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// CanonicalBytes returns the byte-stable serialization signed by the
// document's signing key. Variable-length fields are length-prefixed to
// prevent ambiguity. The Signature and Superseded fields are excluded:
// the former is the output, the latter flips after publication.
func (d *Document) CanonicalBytes() ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = appendLengthPrefixed(buf, []byte(d.DID))
	buf = appendLengthPrefixed(buf, []byte(d.Controller))

	buf = appendUint64(buf, uint64(len(d.Keys)))
	for _, key := range d.Keys {
		buf = appendUint64(buf, key.Epoch)
		buf = appendLengthPrefixed(buf, []byte(key.Algorithm))
		buf = appendLengthPrefixed(buf, key.PublicKey)
		buf = appendLengthPrefixed(buf, []byte(key.Status))
		buf = appendUint64(buf, uint64(key.AddedAt.UnixNano()))
	}

	buf = appendUint64(buf, uint64(len(d.Services)))
	for _, svc := range d.Services {
		buf = appendLengthPrefixed(buf, []byte(svc.ID))
		buf = appendLengthPrefixed(buf, []byte(svc.Type))
		buf = appendLengthPrefixed(buf, []byte(svc.Endpoint))
	}

	if d.Metadata != nil {
		// Struct fields marshal in declaration order, so this is deterministic.
		metadataBytes, err := json.Marshal(d.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadataBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = appendUint64(buf, d.Version)
	buf = appendUint64(buf, uint64(d.CreatedAt.UnixNano()))
	buf = appendUint64(buf, uint64(d.UpdatedAt.UnixNano()))
	buf = appendUint64(buf, d.SigningEpoch)

	return buf, nil
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
