package wire

import "crypto/sha256"

// Digest returns the SHA-256 content digest of an encoded graph (the
// output of Encode), for use as a CI gate or a watch-session correlation
// seed. Same shape as core/planfmt/canonical.go's CanonicalPlan.Hash: hash
// the canonical encoding, not the in-memory structure, so two byte-for-byte
// identical encodings always hash the same.
func Digest(encoded []byte) [32]byte {
	return sha256.Sum256(encoded)
}
