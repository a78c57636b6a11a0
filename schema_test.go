package ksrt

import (
	"errors"
	"testing"

	"github.com/riferrei/srclient"
)

func requireProtoc(t *testing.T) {
	t.Helper()

	if _, err := Protoc(); err != nil {
		t.Skip(`protoc not available`)
	}
}

func TestDecodeDescriptorSet_Malformed(t *testing.T) {
	_, err := DecodeDescriptorSet([]byte{0xff, 0xff, 0xff})

	decodeErr := &DecodeError{}
	if !errors.As(err, &decodeErr) {
		t.Fatalf(`need DecodeError, have %v`, err)
	}
}

func TestBuildSchema_UnsupportedTypes(t *testing.T) {
	for _, schemaType := range []srclient.SchemaType{srclient.Avro, srclient.Json} {
		_, err := BuildSchema(schemaType, `sample.avsc`, nil, false)

		unsupported := &UnsupportedTypeError{}
		if !errors.As(err, &unsupported) {
			t.Fatalf(`need UnsupportedTypeError for %s, have %v`, schemaType, err)
		}
	}
}

const rootProto = `syntax = "proto3";

package app.v1;

import "y.proto";

// the root message
message X {
  dep.v1.Y y = 1;
}
`

const depProtoY = `syntax = "proto3";

package dep.v1;

import "z.proto";

message Y {
  Z z = 1;
}
`

const depProtoZ = `syntax = "proto3";

// shared leaf
message Z {
  string id = 1;
}
`

func TestBuildProtobufSchema_NoImports(t *testing.T) {
	requireProtoc(t)

	dir := t.TempDir()
	text := "syntax = \"proto3\";\n\n// standalone\nmessage X {\n  string id = 1;\n}\n"
	path := writeSchemaFile(t, dir, `x.proto`, text)

	supplied, err := BuildProtobufSchema(path, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	if supplied.SchemaType != srclient.Protobuf {
		t.Errorf(`need %s, have %s`, srclient.Protobuf, supplied.SchemaType)
	}

	if len(supplied.References) != 0 {
		t.Errorf(`need no references, have %+v`, supplied.References)
	}

	// the root text is submitted exactly as on disk
	if supplied.Schema != text {
		t.Errorf(`need %q, have %q`, text, supplied.Schema)
	}
}

func TestBuildProtobufSchema_NestedReferences(t *testing.T) {
	requireProtoc(t)

	rootDir := t.TempDir()
	includeDir := t.TempDir()

	path := writeSchemaFile(t, rootDir, `x.proto`, rootProto)
	writeSchemaFile(t, includeDir, `y.proto`, depProtoY)
	writeSchemaFile(t, includeDir, `z.proto`, depProtoZ)

	supplied, err := BuildProtobufSchema(path, []string{includeDir}, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(supplied.References) != 1 {
		t.Fatalf(`need 1 reference, have %d`, len(supplied.References))
	}

	y := supplied.References[0]
	if y.Name != `y.proto` || y.Subject != `dep.v1.Y` {
		t.Errorf(`need y.proto/dep.v1.Y, have %s/%s`, y.Name, y.Subject)
	}

	if y.Schema != depProtoY {
		t.Errorf(`need %q, have %q`, depProtoY, y.Schema)
	}

	if len(y.References) != 1 {
		t.Fatalf(`need 1 nested reference, have %d`, len(y.References))
	}

	z := y.References[0]
	if z.Name != `z.proto` || z.Subject != `Z` {
		t.Errorf(`need z.proto/Z, have %s/%s`, z.Name, z.Subject)
	}

	if len(z.References) != 0 {
		t.Errorf(`need no references under z.proto, have %+v`, z.References)
	}
}

func TestBuildProtobufSchema_StripCommentsAppliesToDependenciesOnly(t *testing.T) {
	requireProtoc(t)

	rootDir := t.TempDir()
	includeDir := t.TempDir()

	path := writeSchemaFile(t, rootDir, `x.proto`, rootProto)
	writeSchemaFile(t, includeDir, `y.proto`, depProtoY)
	writeSchemaFile(t, includeDir, `z.proto`, depProtoZ)

	supplied, err := BuildProtobufSchema(path, []string{includeDir}, true)
	if err != nil {
		t.Fatal(err)
	}

	// root stays verbatim, comments included
	if supplied.Schema != rootProto {
		t.Errorf(`need %q, have %q`, rootProto, supplied.Schema)
	}

	z := supplied.References[0].References[0]
	if want := StripComments(depProtoZ); z.Schema != want {
		t.Errorf(`need %q, have %q`, want, z.Schema)
	}
}

func TestBuildProtobufSchema_CompileError(t *testing.T) {
	requireProtoc(t)

	dir := t.TempDir()
	path := writeSchemaFile(t, dir, `broken.proto`, "syntax = \"proto3\";\nmessage {\n")

	_, err := BuildProtobufSchema(path, nil, false)

	compileErr := &CompileError{}
	if !errors.As(err, &compileErr) {
		t.Fatalf(`need CompileError, have %v`, err)
	}

	if compileErr.Stderr == `` {
		t.Error(`need protoc stderr, have empty string`)
	}
}

func TestBuildProtobufSchema_MissingFile(t *testing.T) {
	requireProtoc(t)

	if _, err := BuildProtobufSchema(`does-not-exist.proto`, nil, false); err == nil {
		t.Fatal(`need error, have nil`)
	}
}

func TestProtoc_EnvOverride(t *testing.T) {
	t.Setenv(`PROTOC`, `/opt/protoc/bin/protoc`)

	path, err := Protoc()
	if err != nil {
		t.Fatal(err)
	}

	if path != `/opt/protoc/bin/protoc` {
		t.Errorf(`need /opt/protoc/bin/protoc, have %s`, path)
	}
}

func TestProtocInclude_EnvOverride(t *testing.T) {
	t.Setenv(`PROTOC_INCLUDE`, `/opt/protoc/include`)

	path, ok := ProtocInclude()
	if !ok {
		t.Fatal(`need include path, have none`)
	}

	if path != `/opt/protoc/include` {
		t.Errorf(`need /opt/protoc/include, have %s`, path)
	}
}
