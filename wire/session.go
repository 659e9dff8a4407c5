package wire

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// SessionID derives a deterministic correlation label for a `stgdiff
// watch` session from the first graph's digest: repeated re-diffs within
// one watch session share a stable id in logs, and two separate watch
// sessions over the same starting graph are still distinguishable only
// by wall-clock, not by this label — exactly the "same input, same
// derived id" contract NewPlanIDFactory gives DisplayIDs, applied here to
// a log-correlation id instead of a secret-bearing one.
func SessionID(digest [32]byte) (string, error) {
	info := []byte("stg/stgdiff/watch-session/v1")
	kdf := hkdf.New(sha3.New256, digest[:], nil, info)

	label := make([]byte, 8)
	if _, err := kdf.Read(label); err != nil {
		return "", fmt.Errorf("wire: deriving session id: %w", err)
	}
	return "stgdiff-" + hex.EncodeToString(label), nil
}
