package ksrt

import (
	"os"
	"path/filepath"

	"github.com/tryfix/errors"
	"google.golang.org/protobuf/types/descriptorpb"
)

// LocateSchemaFile resolves a logical import name against an ordered list
// of include directories and returns the path of the first match. First
// directory containing the name as a regular file wins, so earlier entries
// shadow later ones, matching protoc's own resolution order.
func LocateSchemaFile(name string, includes []string) (string, error) {
	for _, include := range includes {
		path := filepath.Join(include, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return ``, &NotFoundError{Name: name}
}

// ReadSchemaFile reads the full source text of a schema file. The bytes are
// taken as-is without encoding validation; protoc has already accepted the
// file, and registry submission treats the text opaquely.
func ReadSchemaFile(name string, includes []string) (string, error) {
	path, err := LocateSchemaFile(name, includes)
	if err != nil {
		return ``, err
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return ``, errors.WithPrevious(err, `failed to read schema file`)
	}

	return string(buf), nil
}

// LoadSchemaTexts builds the name to source text mapping for every file in
// the descriptor set, optionally stripping comments from each text. The
// mapping is built once per invocation and treated as immutable afterwards.
func LoadSchemaTexts(set *descriptorpb.FileDescriptorSet, includes []string, strip bool) (map[string]string, error) {
	schemas := make(map[string]string, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		name := fd.GetName()
		if name == `` {
			return nil, &DecodeError{Err: errors.New(`missing name in file descriptor`)}
		}

		schema, err := ReadSchemaFile(name, includes)
		if err != nil {
			return nil, err
		}

		if strip {
			// As of now, the Schema Registry doesn't exclude comments
			// when comparing versions.
			schema = StripComments(schema)
		}

		schemas[name] = schema
	}

	return schemas, nil
}
