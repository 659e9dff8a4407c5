package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stg-tools/stg/graph"
)

// Decode is Encode's inverse: it reconstructs a Graph whose ids are
// exactly the envelope's 1..N, with the root recorded via SetRoot.
func Decode(data []byte) (*graph.Graph, graph.Id, error) {
	var env graphEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, graph.None, fmt.Errorf("wire: CBOR decoding failed: %w", err)
	}
	if env.Version != 1 {
		return nil, graph.None, fmt.Errorf("wire: unsupported envelope version %d", env.Version)
	}

	g := graph.New()
	for range env.Nodes {
		g.Allocate()
	}

	for i, wn := range env.Nodes {
		id := graph.Id(i + 1)
		n, err := fromWireNode(wn)
		if err != nil {
			return nil, graph.None, fmt.Errorf("node %s: %w", id, err)
		}
		if err := graph.SetNode(g, id, n); err != nil {
			return nil, graph.None, fmt.Errorf("node %s: %w", id, err)
		}
	}

	root := graph.Id(env.Root)
	g.SetRoot(root)
	return g, root, nil
}

func fromWireNode(wn graphNode) (graph.Node, error) {
	switch wn.Type {
	case "void":
		return graph.Void{}, nil
	case "variadic":
		return graph.Variadic{}, nil
	case "pointer":
		return graph.PointerReference{Kind: graph.PointerKind(wn.Kind), Pointee: graph.Id(wn.Pointee)}, nil
	case "pointer_to_member":
		return graph.PointerToMember{
			ContainingType: graph.Id(wn.ContainingType),
			PointeeType:    graph.Id(wn.PointeeType),
		}, nil
	case "typedef":
		return graph.Typedef{Name: wn.Name, ReferredType: graph.Id(wn.ReferredType)}, nil
	case "qualified":
		return graph.Qualified{Qualifier: graph.Qualifier(wn.Qualifier), QualifiedType: graph.Id(wn.QualifiedType)}, nil
	case "primitive":
		return graph.Primitive{
			Name:     wn.Name,
			Encoding: graph.PrimitiveEncoding(wn.Encoding),
			Bytesize: uint32(wn.Bytesize),
		}, nil
	case "array":
		return graph.Array{NumberOfElements: wn.NumberOfElements, ElementType: graph.Id(wn.ElementType)}, nil
	case "base_class":
		return graph.BaseClass{
			Type:        graph.Id(wn.TypeID),
			OffsetBits:  wn.OffsetBits,
			Inheritance: graph.Inheritance(wn.Inheritance),
		}, nil
	case "method":
		m := graph.Method{
			MangledName: wn.MangledName,
			Name:        wn.Name,
			Kind:        graph.MethodKind(wn.Kind),
			Type:        graph.Id(wn.TypeID),
		}
		if wn.HasVtableOffset {
			offset := wn.VtableOffset
			m.VtableOffset = &offset
		}
		return m, nil
	case "member":
		return graph.Member{
			Name:       wn.Name,
			Type:       graph.Id(wn.TypeID),
			OffsetBits: wn.OffsetBits,
			Bitsize:    wn.Bitsize,
		}, nil
	case "struct_union":
		su := graph.StructUnion{Kind: graph.StructUnionKind(wn.Kind), Name: wn.Name}
		if wn.Defined {
			su.Definition = &graph.StructUnionDefinition{
				Bytesize:    wn.Bytesize,
				BaseClasses: fromWireIDs(wn.BaseClasses),
				Methods:     fromWireIDs(wn.Methods),
				Members:     fromWireIDs(wn.Members),
			}
		}
		return su, nil
	case "enumeration":
		e := graph.Enumeration{Name: wn.Name}
		if wn.Defined {
			enumerators := make([]graph.Enumerator, len(wn.Enumerators))
			for i, en := range wn.Enumerators {
				enumerators[i] = graph.Enumerator{Name: en.Name, Value: en.Value}
			}
			e.Definition = &graph.EnumerationDefinition{
				UnderlyingType: graph.Id(wn.UnderlyingType),
				Enumerators:    enumerators,
			}
		}
		return e, nil
	case "function":
		return graph.Function{ReturnType: graph.Id(wn.ReturnType), Parameters: fromWireIDs(wn.Parameters)}, nil
	case "elf_symbol":
		s := graph.ElfSymbol{
			SymbolName: wn.SymbolName,
			IsDefined:  wn.IsDefined,
			SymbolType: graph.SymbolType(wn.SymbolType),
			Binding:    graph.SymbolBinding(wn.Binding),
			Visibility: graph.SymbolVisibility(wn.Visibility),
			Namespace:  wn.Namespace,
			Type:       graph.Id(wn.TypeID),
			FullName:   wn.FullName,
		}
		if wn.HasVersion {
			s.VersionInfo = &graph.VersionInfo{Name: wn.VersionName, IsDefault: wn.VersionIsDefault}
		}
		if wn.HasCRC {
			crc := wn.CRC
			s.CRC = &crc
		}
		return s, nil
	case "interface":
		return graph.Interface{
			Symbols: fromWireEntries(wn.Symbols),
			Types:   fromWireEntries(wn.Types),
		}, nil
	default:
		return nil, fmt.Errorf("unrecognised node type %q", wn.Type)
	}
}

func fromWireIDs(ids []uint32) []graph.Id {
	if len(ids) == 0 {
		return nil
	}
	out := make([]graph.Id, len(ids))
	for i, id := range ids {
		out[i] = graph.Id(id)
	}
	return out
}

func fromWireEntries(entries []wireEntry) *graph.OrderedMap {
	m := graph.NewOrderedMap()
	for _, e := range entries {
		m.Set(e.Key, graph.Id(e.ID))
	}
	return m
}
