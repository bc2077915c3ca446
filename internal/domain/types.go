// Package domain contains the core domain types shared across the ts-swag
// application: extracted declarations, the canonical schema model, and the
// route descriptors that flow from extraction to resolution.
package domain

// Dialect identifies the schema style a declaration was written in.
// The set is closed: every consumer dispatches over exactly these four.
type Dialect int

const (
	// DialectZodChain is a builder-chain schema rooted at a zod entry point.
	DialectZodChain Dialect = iota

	// DialectJoiChain is a builder-chain schema rooted at a joi entry point.
	DialectJoiChain

	// DialectAnnotatedClass is a class whose properties carry
	// validation/documentation decorators.
	DialectAnnotatedClass

	// DialectTypeDecl is a plain interface or type alias declaration.
	DialectTypeDecl
)

// String returns the dialect name used in debug output.
func (d Dialect) String() string {
	switch d {
	case DialectZodChain:
		return "zod-chain"
	case DialectJoiChain:
		return "joi-chain"
	case DialectAnnotatedClass:
		return "annotated-class"
	case DialectTypeDecl:
		return "type-declaration"
	default:
		return "unknown"
	}
}

// FieldType is one of the five canonical schema types.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// Span is a byte extent within a source file.
type Span struct {
	Start int
	End   int
}

// ChainCall is one link of a flattened builder call chain,
// e.g. min(3) in z.string().min(3). Args hold the raw argument text.
type ChainCall struct {
	Name string
	Args []string
}

// DecoratorCall is a field- or class-level decorator with its raw
// argument texts. Props holds the key/value pairs of the first
// object-literal argument, if any, e.g. @ApiProperty({description: '...'}).
type DecoratorCall struct {
	Name  string
	Args  []string
	Props map[string]string
}

// RawField is a single field of a declaration as captured by the
// extractor, before dialect normalization.
type RawField struct {
	// Name of the field within its declaration
	Name string

	// Span of the whole field definition in the source file
	Span Span

	// Chain is the flattened builder call chain (builder dialects only)
	Chain []ChainCall

	// TypeText is the raw type annotation text (class and type dialects)
	TypeText string

	// Optional is true when the field carries a '?' marker
	Optional bool

	// Decorators on the field (annotated-class dialect only)
	Decorators []DecoratorCall
}

// Declaration is a named, file-scoped definition recognized by the
// declaration extractor. Names are unique within a file; on a clash the
// later declaration wins, matching module namespacing.
type Declaration struct {
	Name    string
	Dialect Dialect
	Span    Span

	// Body is the raw text of the declaration
	Body string

	// Fields captured at extraction time, in source order
	Fields []RawField

	// Source is the full text of the owning file, kept for
	// comment-based description resolution
	Source []byte
}

// ImportTable maps an imported identifier to the module specifier it was
// imported from, as written in the source (e.g. "./schemas/user").
// The specifier is resolved to a file lazily, at resolution time.
type ImportTable map[string]string

// SourceFile is one parsed source file: its declarations and import table.
// Created at scan time and immutable afterwards.
type SourceFile struct {
	// Path is the file identity (absolute, or as enumerated)
	Path string

	// Source is the raw file text
	Source []byte

	// Declarations in source order
	Declarations []*Declaration

	// Imports maps imported identifiers to module specifiers
	Imports ImportTable

	declIndex map[string]*Declaration
}

// NewSourceFile creates a SourceFile and indexes its declarations by name
// with last-writer-wins semantics.
func NewSourceFile(path string, source []byte, decls []*Declaration, imports ImportTable) *SourceFile {
	if imports == nil {
		imports = make(ImportTable)
	}
	f := &SourceFile{
		Path:         path,
		Source:       source,
		Declarations: decls,
		Imports:      imports,
		declIndex:    make(map[string]*Declaration, len(decls)),
	}
	for _, d := range decls {
		f.declIndex[d.Name] = d
	}
	return f
}

// Declaration returns the declaration with the given name, if any.
func (f *SourceFile) Declaration(name string) (*Declaration, bool) {
	d, ok := f.declIndex[name]
	return d, ok
}

// FieldSchema is the canonical, dialect-independent shape of one field.
type FieldSchema struct {
	Name        string
	Type        FieldType
	Format      string
	Minimum     *float64
	Items       *FieldSchema
	Description string
	Required    bool
}

// ObjectSchema is the canonical schema every dialect normalizes to.
// Nothing downstream of the normalizer is dialect-aware.
type ObjectSchema struct {
	// Name of the originating declaration, used for definition naming
	Name string

	// Fields in declaration order; names are unique
	Fields []FieldSchema
}

// RequiredFields returns the names of all required fields.
func (s *ObjectSchema) RequiredFields() []string {
	var required []string
	for _, f := range s.Fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return required
}

// SchemaRef is an unresolved reference to a schema: an identifier plus the
// file it was referenced from.
type SchemaRef struct {
	Identifier string
	File       string
}

// RouteDescriptor is the as-scanned record of one route registration,
// before its schema references are resolved.
type RouteDescriptor struct {
	// Method is the upper-cased HTTP method
	Method string

	// RawPath is the path as written in the source
	RawPath string

	// Path is the normalized path ({id} instead of :id)
	Path string

	BodyRef    *SchemaRef
	QueryRef   *SchemaRef
	ParamsRef  *SchemaRef
	HeadersRef *SchemaRef

	// ResponseRefs maps status codes to response schema references
	ResponseRefs map[int]*SchemaRef

	// File and Line locate the registration for debug output
	File string
	Line int
}

// RouteInfo is the fully resolved form of a RouteDescriptor. Any schema
// that could not be resolved is nil; the route itself is always kept.
type RouteInfo struct {
	Method string
	Path   string

	Body    *ObjectSchema
	Query   *ObjectSchema
	Params  *ObjectSchema
	Headers *ObjectSchema

	// Responses maps status codes to resolved response schemas.
	// A nil value records a response whose reference did not resolve.
	Responses map[int]*ObjectSchema

	File string
	Line int
}
