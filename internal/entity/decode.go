package entity

import (
	"encoding/json"
	"fmt"
	"os"
)

// dumpFile is the on-disk shape of an AST dump: a flat entity table keyed by
// id, plus the ids of the translation unit roots. Cross-references (children,
// type declarations) are ids into the table so the exporter can emit the
// graph without worrying about ordering.
type dumpFile struct {
	Roots    []int        `json:"roots"`
	Entities []dumpEntity `json:"entities"`
}

type dumpEntity struct {
	ID           int       `json:"id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name,omitempty"`
	File         string    `json:"file,omitempty"`
	Start        int       `json:"start,omitempty"`
	End          int       `json:"end,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	SystemHeader bool      `json:"system,omitempty"`
	Definition   bool      `json:"definition,omitempty"`
	Access       string    `json:"access,omitempty"`
	Static       bool      `json:"static,omitempty"`
	Virtual      bool      `json:"virtual,omitempty"`
	PureVirtual  bool      `json:"pure,omitempty"`
	Const        bool      `json:"const,omitempty"`
	Result       *dumpType `json:"result,omitempty"`
	Type         *dumpType `json:"type,omitempty"`
	Params       []struct {
		Name string   `json:"name,omitempty"`
		Type dumpType `json:"type"`
	} `json:"params,omitempty"`
	Children []int `json:"children,omitempty"`
}

type dumpType struct {
	Display string `json:"display"`
	Decl    int    `json:"decl,omitempty"`
}

// LoadDump reads an AST dump file and reconstructs the entity trees, one root
// per translation unit.
func LoadDump(path string) ([]*Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read AST dump: %w", err)
	}
	return DecodeDump(data)
}

// DecodeDump reconstructs entity trees from raw dump bytes.
func DecodeDump(data []byte) ([]*Entity, error) {
	var dump dumpFile
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parse AST dump: %w", err)
	}

	table := make(map[int]*Entity, len(dump.Entities))
	for _, de := range dump.Entities {
		table[de.ID] = &Entity{
			Kind:         parseKind(de.Kind),
			Name:         de.Name,
			Comment:      de.Comment,
			SystemHeader: de.SystemHeader,
			Definition:   de.Definition,
			Access:       parseAccess(de.Access),
			Static:       de.Static,
			Virtual:      de.Virtual,
			PureVirtual:  de.PureVirtual,
			Const:        de.Const,
		}
		if de.File != "" {
			table[de.ID].Location = &Location{File: de.File, Start: de.Start, End: de.End}
		}
	}

	// Second pass resolves id references now that every entity exists.
	for _, de := range dump.Entities {
		e := table[de.ID]
		if de.Result != nil {
			e.Result = resolveType(de.Result, table)
		}
		if de.Type != nil {
			e.Type = resolveType(de.Type, table)
		}
		for _, dp := range de.Params {
			p := Param{Name: dp.Name}
			if tr := resolveType(&dp.Type, table); tr != nil {
				p.Type = *tr
			}
			e.Params = append(e.Params, p)
		}
		for _, cid := range de.Children {
			child, ok := table[cid]
			if !ok {
				return nil, fmt.Errorf("AST dump: entity %d references unknown child %d", de.ID, cid)
			}
			e.Children = append(e.Children, child)
		}
	}

	roots := make([]*Entity, 0, len(dump.Roots))
	for _, rid := range dump.Roots {
		root, ok := table[rid]
		if !ok {
			return nil, fmt.Errorf("AST dump: unknown root entity %d", rid)
		}
		roots = append(roots, root)
	}
	return roots, nil
}

func resolveType(dt *dumpType, table map[int]*Entity) *TypeRef {
	if dt == nil {
		return nil
	}
	tr := &TypeRef{Display: dt.Display}
	if dt.Decl != 0 {
		tr.Decl = table[dt.Decl]
	}
	return tr
}

func parseKind(s string) Kind {
	switch Kind(s) {
	case KindTranslationUnit, KindNamespace, KindClass, KindStruct,
		KindFunction, KindMethod, KindField:
		return Kind(s)
	default:
		return KindUnknown
	}
}

func parseAccess(s string) Access {
	switch Access(s) {
	case AccessPublic, AccessProtected, AccessPrivate:
		return Access(s)
	default:
		return AccessPublic
	}
}
