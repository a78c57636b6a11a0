package ksrt

import (
	"os"
	"path/filepath"

	"github.com/riferrei/srclient"
	"github.com/tryfix/errors"
)

// SuppliedSchema is a schema document ready for registry submission: the
// root file's raw text, its schema type, and the reference tree for its
// direct dependencies.
type SuppliedSchema struct {
	SchemaType srclient.SchemaType
	Schema     string
	References []SuppliedReference
}

// BuildSchema assembles a submittable schema document of the given type
// from a root schema file. Only protobuf is implemented; avro and json are
// reserved and fail explicitly.
func BuildSchema(schemaType srclient.SchemaType, file string, includeDirs []string, stripComments bool) (*SuppliedSchema, error) {
	switch schemaType {
	case srclient.Protobuf:
		return BuildProtobufSchema(file, includeDirs, stripComments)
	default:
		return nil, &UnsupportedTypeError{Type: schemaType}
	}
}

// BuildProtobufSchema compiles a root .proto file against the given include
// directories and assembles a submittable schema document.
//
// The root file's parent directory is always the first include searched,
// followed by the caller-supplied directories, with protoc's bundled
// include root last. The root schema text is submitted exactly as on disk;
// comment stripping, when enabled, applies to the dependency texts reused
// for version comparison.
func BuildProtobufSchema(file string, includeDirs []string, stripComments bool) (*SuppliedSchema, error) {
	file, err := filepath.Abs(file)
	if err != nil {
		return nil, errors.WithPrevious(err, `failed to canonicalize schema file path`)
	}

	includes := make([]string, 0, len(includeDirs)+2)
	includes = append(includes, filepath.Dir(file))

	for _, dir := range includeDirs {
		dir, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.WithPrevious(err, `failed to canonicalize include directory`)
		}

		includes = append(includes, dir)
	}

	set, err := ParseProtos([]string{file}, includes)
	if err != nil {
		return nil, err
	}

	if include, ok := ProtocInclude(); ok {
		includes = append(includes, include)
	}

	schemas, err := LoadSchemaTexts(set, includes, stripComments)
	if err != nil {
		return nil, err
	}

	fds := set.GetFile()
	if len(fds) == 0 {
		return nil, &DecodeError{Err: errors.New(`empty file descriptor set`)}
	}

	// protoc emits the root file last; anything else means it resolved the
	// root under an unexpected logical name.
	root := fds[len(fds)-1]
	if base := filepath.Base(file); root.GetName() != base {
		return nil, &ConsistencyError{Want: base, Got: root.GetName()}
	}

	references, err := ProtobufReferences(root, fds[:len(fds)-1], schemas)
	if err != nil {
		return nil, err
	}

	schema, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithPrevious(err, `failed to read schema file`)
	}

	return &SuppliedSchema{
		SchemaType: srclient.Protobuf,
		Schema:     string(schema),
		References: references,
	}, nil
}
