package appcompose

import (
	"github.com/opencontainers/go-digest"
)

// ComputeHash computes the SHA-256 digest of manifest bytes, returned as
// 64 lowercase hex characters.
func ComputeHash(b []byte) string {
	return digest.SHA256.FromBytes(b).Encoded()
}

// Hash computes the production digest of the manifest: SHA-256 over the
// UTF-8 bytes of its literal rendering.
func (m *Manifest) Hash() string {
	return ComputeHash([]byte(m.RenderLiteral()))
}
