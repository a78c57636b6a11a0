package ksrt

import (
	"fmt"
	"strings"

	"github.com/riferrei/srclient"
)

// ConfigError indicates a missing or unusable piece of local configuration,
// such as the protoc binary not being installed.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(`%s: %v`, e.Reason, e.Err)
	}

	return e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// CompileError carries the compiler's stderr verbatim after a non-zero exit.
type CompileError struct {
	Stderr string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf(`protoc failed: %s`, e.Stderr)
}

// DecodeError indicates the compiler output could not be decoded as a
// FileDescriptorSet.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(`malformed file descriptor set: %v`, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NotFoundError indicates that a named schema file could not be located,
// either on disk under any include directory or among the compiled file
// descriptors.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(`failed to locate file for: %s`, e.Name)
}

// SchemaShapeError indicates a schema file declares no top-level message
// type, so no subject can be derived for it.
type SchemaShapeError struct {
	File string
}

func (e *SchemaShapeError) Error() string {
	return fmt.Sprintf(`failed to locate a top-level message type in: %s`, e.File)
}

// MissingTextError indicates a file descriptor with no loaded source text,
// which means the loader and the compiler disagree about the file set.
type MissingTextError struct {
	File string
}

func (e *MissingTextError) Error() string {
	return fmt.Sprintf(`failed to locate schema for: %s`, e.File)
}

// ConsistencyError indicates the compiler resolved the root file under an
// unexpected logical name.
type ConsistencyError struct {
	Want string
	Got  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf(`root file descriptor name mismatch: want %s, got %s`, e.Want, e.Got)
}

// CycleError indicates an import cycle among the compiled schema files.
// Chain holds the file names along the cycle, ending with the repeated one.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf(`import cycle detected: %s`, strings.Join(e.Chain, ` -> `))
}

// UnsupportedTypeError indicates an operation is not implemented for the
// given schema type.
type UnsupportedTypeError struct {
	Type srclient.SchemaType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf(`schema type %s not yet supported`, e.Type)
}
