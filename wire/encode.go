package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stg-tools/stg/graph"
)

// encMode is the canonical CBOR encoding mode: sorted map keys, shortest
// integer forms. A deterministic byte stream is the whole point — two
// structurally equal graphs must encode to identical bytes.
func encMode() (cbor.EncMode, error) {
	return cbor.CanonicalEncOptions().EncMode()
}

// Encode renumbers the subgraph reachable from root (see Renumber) and
// serialises it as canonical CBOR. Two structurally-equal graphs, built
// in whatever order, encode to identical bytes.
func Encode(g *graph.Graph, root graph.Id) ([]byte, error) {
	renumbered, newRoot := Renumber(g, root)

	nodes := make([]graphNode, 0, renumbered.MaxId())
	err := renumbered.ForEach(func(id graph.Id) error {
		wn, err := toWireNode(renumbered.Get(id))
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		nodes = append(nodes, wn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	env := graphEnvelope{
		Version: 1,
		Root:    uint32(newRoot),
		Nodes:   nodes,
	}

	mode, err := encMode()
	if err != nil {
		return nil, fmt.Errorf("wire: building CBOR encoder: %w", err)
	}
	data, err := mode.Marshal(&env)
	if err != nil {
		return nil, fmt.Errorf("wire: CBOR encoding failed: %w", err)
	}
	return data, nil
}

func toWireNode(n graph.Node) (graphNode, error) {
	switch v := n.(type) {
	case graph.Void:
		return graphNode{Type: "void"}, nil
	case graph.Variadic:
		return graphNode{Type: "variadic"}, nil
	case graph.PointerReference:
		return graphNode{Type: "pointer", Kind: uint8(v.Kind), Pointee: uint32(v.Pointee)}, nil
	case graph.PointerToMember:
		return graphNode{
			Type:           "pointer_to_member",
			ContainingType: uint32(v.ContainingType),
			PointeeType:    uint32(v.PointeeType),
		}, nil
	case graph.Typedef:
		return graphNode{Type: "typedef", Name: v.Name, ReferredType: uint32(v.ReferredType)}, nil
	case graph.Qualified:
		return graphNode{
			Type:          "qualified",
			Qualifier:     uint8(v.Qualifier),
			QualifiedType: uint32(v.QualifiedType),
		}, nil
	case graph.Primitive:
		return graphNode{
			Type:     "primitive",
			Name:     v.Name,
			Encoding: uint8(v.Encoding),
			Bytesize: uint64(v.Bytesize),
		}, nil
	case graph.Array:
		return graphNode{
			Type:             "array",
			NumberOfElements: v.NumberOfElements,
			ElementType:      uint32(v.ElementType),
		}, nil
	case graph.BaseClass:
		return graphNode{
			Type:        "base_class",
			TypeID:      uint32(v.Type),
			OffsetBits:  v.OffsetBits,
			Inheritance: uint8(v.Inheritance),
		}, nil
	case graph.Method:
		wn := graphNode{
			Type:        "method",
			Name:        v.Name,
			MangledName: v.MangledName,
			Kind:        uint8(v.Kind),
			TypeID:      uint32(v.Type),
		}
		if v.VtableOffset != nil {
			wn.HasVtableOffset = true
			wn.VtableOffset = *v.VtableOffset
		}
		return wn, nil
	case graph.Member:
		return graphNode{
			Type:       "member",
			Name:       v.Name,
			TypeID:     uint32(v.Type),
			OffsetBits: v.OffsetBits,
			Bitsize:    v.Bitsize,
		}, nil
	case graph.StructUnion:
		wn := graphNode{Type: "struct_union", Kind: uint8(v.Kind), Name: v.Name}
		if v.Definition != nil {
			wn.Defined = true
			wn.Bytesize = v.Definition.Bytesize
			wn.BaseClasses = toWireIDs(v.Definition.BaseClasses)
			wn.Methods = toWireIDs(v.Definition.Methods)
			wn.Members = toWireIDs(v.Definition.Members)
		}
		return wn, nil
	case graph.Enumeration:
		wn := graphNode{Type: "enumeration", Name: v.Name}
		if v.Definition != nil {
			wn.Defined = true
			wn.UnderlyingType = uint32(v.Definition.UnderlyingType)
			wn.Enumerators = make([]wireEnumerator, len(v.Definition.Enumerators))
			for i, e := range v.Definition.Enumerators {
				wn.Enumerators[i] = wireEnumerator{Name: e.Name, Value: e.Value}
			}
		}
		return wn, nil
	case graph.Function:
		return graphNode{
			Type:       "function",
			ReturnType: uint32(v.ReturnType),
			Parameters: toWireIDs(v.Parameters),
		}, nil
	case graph.ElfSymbol:
		wn := graphNode{
			Type:       "elf_symbol",
			SymbolName: v.SymbolName,
			IsDefined:  v.IsDefined,
			SymbolType: uint8(v.SymbolType),
			Binding:    uint8(v.Binding),
			Visibility: uint8(v.Visibility),
			Namespace:  v.Namespace,
			TypeID:     uint32(v.Type),
			FullName:   v.FullName,
		}
		if v.VersionInfo != nil {
			wn.HasVersion = true
			wn.VersionName = v.VersionInfo.Name
			wn.VersionIsDefault = v.VersionInfo.IsDefault
		}
		if v.CRC != nil {
			wn.HasCRC = true
			wn.CRC = *v.CRC
		}
		return wn, nil
	case graph.Interface:
		return graphNode{
			Type:    "interface",
			Symbols: toWireEntries(v.Symbols),
			Types:   toWireEntries(v.Types),
		}, nil
	default:
		return graphNode{}, fmt.Errorf("unsupported node type %T", n)
	}
}

func toWireIDs(ids []graph.Id) []uint32 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func toWireEntries(m *graph.OrderedMap) []wireEntry {
	keys := m.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]wireEntry, len(keys))
	for i, k := range keys {
		id, _ := m.Get(k)
		out[i] = wireEntry{Key: k, ID: uint32(id)}
	}
	return out
}
