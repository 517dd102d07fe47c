package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed node identifier: the sha256 of the path
// that created the node, e.g. "defpart/crate/lid".
type NodeID [32]byte

// NewNodeID hashes path into a NodeID.
func NewNodeID(path string) NodeID {
	return NodeID(sha256.Sum256([]byte(path)))
}

// IsZero reports whether id is the zero value.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

// String returns the full hex form.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex digits, for logs and error messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:4])
}

// MarshalText implements encoding.TextMarshaler so IDs can key JSON maps.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
