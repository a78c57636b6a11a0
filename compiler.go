package ksrt

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tryfix/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Protoc returns the path of the protoc binary, honouring the PROTOC
// environment variable before falling back to the executable search path.
func Protoc() (string, error) {
	if path := os.Getenv(`PROTOC`); path != `` {
		return path, nil
	}

	path, err := exec.LookPath(`protoc`)
	if err != nil {
		return ``, &ConfigError{Reason: `protoc binary not found (install protoc or set PROTOC)`, Err: err}
	}

	return path, nil
}

// ProtocInclude returns the directory holding protoc's bundled well-known
// type definitions, honouring the PROTOC_INCLUDE environment variable
// before probing the conventional <protoc dir>/../include location. The
// boolean reports whether a usable directory was found.
func ProtocInclude() (string, bool) {
	if path := os.Getenv(`PROTOC_INCLUDE`); path != `` {
		return path, true
	}

	path, err := Protoc()
	if err != nil {
		return ``, false
	}

	include := filepath.Join(filepath.Dir(path), `..`, `include`)
	if info, err := os.Stat(include); err == nil && info.IsDir() {
		return include, true
	}

	return ``, false
}

// ParseProtos compiles the given root schema files plus everything they
// transitively import into a single FileDescriptorSet by invoking protoc.
//
// Imported files and source location info are embedded in the produced set.
// The protoc bundled include root is appended after the caller-supplied
// includes so user copies of the well-known types take precedence. The
// descriptor set is written to a temporary directory which is removed
// before returning, on every path.
func ParseProtos(protos []string, includes []string) (*descriptorpb.FileDescriptorSet, error) {
	protoc, err := Protoc()
	if err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp(``, `ksrt-build`)
	if err != nil {
		return nil, errors.WithPrevious(err, `failed to create temporary build directory`)
	}

	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, `descriptor-set`)

	args := []string{
		`--include_imports`,
		`--include_source_info`,
		`-o`, out,
	}

	for _, include := range includes {
		args = append(args, `-I`, include)
	}

	if include, ok := ProtocInclude(); ok {
		args = append(args, `-I`, include)
	}

	args = append(args, protos...)

	cmd := exec.Command(protoc, args...)
	if _, err := cmd.Output(); err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return nil, &CompileError{Stderr: string(exit.Stderr)}
		}

		return nil, &ConfigError{Reason: `failed to run protoc`, Err: err}
	}

	buf, err := os.ReadFile(out)
	if err != nil {
		return nil, errors.WithPrevious(err, `failed to read descriptor set`)
	}

	return DecodeDescriptorSet(buf)
}

// DecodeDescriptorSet decodes raw bytes into a FileDescriptorSet. Pure; no
// I/O.
func DecodeDescriptorSet(buf []byte) (*descriptorpb.FileDescriptorSet, error) {
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(buf, set); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return set, nil
}
