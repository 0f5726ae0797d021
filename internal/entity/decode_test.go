package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDump_BuildsTree(t *testing.T) {
	data := []byte(`{
		"roots": [1],
		"entities": [
			{"id": 1, "kind": "translation_unit", "name": "foo.cpp", "children": [2]},
			{"id": 2, "kind": "namespace", "name": "geo", "children": [3]},
			{"id": 3, "kind": "class", "name": "Point", "definition": true,
			 "file": "include/point.hpp", "start": 10, "end": 200,
			 "comment": "A 2D point.", "children": [4]},
			{"id": 4, "kind": "method", "name": "norm", "access": "public", "const": true,
			 "result": {"display": "double"}}
		]
	}`)

	roots, err := DecodeDump(data)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	tu := roots[0]
	require.Equal(t, KindTranslationUnit, tu.Kind)
	require.Len(t, tu.Children, 1)

	ns := tu.Children[0]
	require.Equal(t, KindNamespace, ns.Kind)
	require.Equal(t, "geo", ns.Name)

	cls := ns.Children[0]
	require.Equal(t, KindClass, cls.Kind)
	require.True(t, cls.Definition)
	require.NotNil(t, cls.Location)
	require.Equal(t, "include/point.hpp", cls.Location.File)
	require.Equal(t, "A 2D point.", cls.Comment)

	m := cls.Children[0]
	require.Equal(t, KindMethod, m.Kind)
	require.True(t, m.Const)
	require.NotNil(t, m.Result)
	require.Equal(t, "double", m.Result.Display)
}

func TestDecodeDump_ResolvesTypeDecl(t *testing.T) {
	data := []byte(`{
		"roots": [1],
		"entities": [
			{"id": 1, "kind": "translation_unit", "children": [2, 3]},
			{"id": 2, "kind": "class", "name": "Point", "definition": true},
			{"id": 3, "kind": "function", "name": "midpoint",
			 "result": {"display": "Point", "decl": 2},
			 "params": [{"name": "a", "type": {"display": "const Point &", "decl": 2}}]}
		]
	}`)

	roots, err := DecodeDump(data)
	require.NoError(t, err)

	fn := roots[0].Children[1]
	require.NotNil(t, fn.Result.Decl)
	require.Equal(t, "Point", fn.Result.Decl.Name)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Same(t, fn.Result.Decl, fn.Params[0].Type.Decl)
}

func TestDecodeDump_UnknownKindDegrades(t *testing.T) {
	data := []byte(`{"roots": [1], "entities": [{"id": 1, "kind": "enum"}]}`)
	roots, err := DecodeDump(data)
	require.NoError(t, err)
	require.Equal(t, KindUnknown, roots[0].Kind)
}

func TestDecodeDump_BadReferences(t *testing.T) {
	_, err := DecodeDump([]byte(`{"roots": [9], "entities": []}`))
	require.Error(t, err)

	_, err = DecodeDump([]byte(`{"roots": [1], "entities": [{"id": 1, "kind": "namespace", "children": [5]}]}`))
	require.Error(t, err)
}
