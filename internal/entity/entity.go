// Package entity models the externally produced C++ AST consumed by cppdoc.
// The dump is emitted by a clang-based exporter; cppdoc performs no parsing of
// its own and treats the tree as read-only.
package entity

// Kind identifies the syntactic category of an AST entity.
type Kind string

const (
	KindTranslationUnit Kind = "translation_unit"
	KindNamespace       Kind = "namespace"
	KindClass           Kind = "class"
	KindStruct          Kind = "struct"
	KindFunction        Kind = "function"
	KindMethod          Kind = "method"
	KindField           Kind = "field"
	KindUnknown         Kind = "unknown"
)

// Access is the C++ member access level.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// Location is a byte range within a source file.
type Location struct {
	File  string
	Start int
	End   int
}

// TypeRef is a displayed type with an optional link to the entity declaring it.
type TypeRef struct {
	Display string
	Decl    *Entity
}

// Param is one function parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Entity is one node of the AST. Name, Location and Comment may be absent;
// consumers must degrade rather than fail when they are.
type Entity struct {
	Kind         Kind
	Name         string
	Location     *Location
	Comment      string
	SystemHeader bool
	Definition   bool
	Access       Access

	// Function/method signature details, present for callable kinds.
	Result      *TypeRef
	Params      []Param
	Static      bool
	Virtual     bool
	PureVirtual bool
	Const       bool

	// Field type, present for KindField.
	Type *TypeRef

	Children []*Entity
}
