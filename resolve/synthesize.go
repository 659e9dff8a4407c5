package resolve

import (
	"fmt"

	"github.com/stg-tools/stg/graph"
)

// SynthesizeEnumUnderlying produces the synthetic Primitive a front-end
// substitutes in for an enum's underlying type when the source debug
// information omits it. The name is produced bit-exactly
// ("enum-underlying-<signedness>-<bits>") since dedup partitioning and the
// wire codec's round-trip both key off the literal string.
func SynthesizeEnumUnderlying(signed bool, bits int) graph.Primitive {
	signedness := "unsigned"
	encoding := graph.UnsignedInteger
	if signed {
		signedness = "signed"
		encoding = graph.SignedInteger
	}
	return graph.Primitive{
		Name:     fmt.Sprintf("enum-underlying-%s-%d", signedness, bits),
		Encoding: encoding,
		Bytesize: uint32(bits / 8),
	}
}
