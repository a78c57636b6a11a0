package ksrt

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// SuppliedReference is one imported dependency of a schema being submitted:
// its import name, the subject it registers under, its source text and its
// own nested references.
type SuppliedReference struct {
	Name       string
	Subject    string
	Schema     string
	References []SuppliedReference
}

// SubjectFor derives the registry subject for a schema file: its package
// name (possibly empty) joined with the name of its first top-level message
// type. Files declaring no top-level message type have no derivable subject.
func SubjectFor(fd *descriptorpb.FileDescriptorProto) (string, error) {
	if len(fd.GetMessageType()) == 0 {
		return ``, &SchemaShapeError{File: fd.GetName()}
	}

	parts := make([]string, 0, 2)
	if pkg := fd.GetPackage(); pkg != `` {
		parts = append(parts, pkg)
	}

	parts = append(parts, fd.GetMessageType()[0].GetName())

	return strings.Join(parts, `.`), nil
}

// ProtobufReferences recursively builds the ordered reference list for a
// file descriptor's dependencies. Output order mirrors the descriptor's
// declared dependency order, which determines registration order on the
// registry side. Shared dependencies appear once per referencing path; a
// dependency name recurring on the current expansion chain is an import
// cycle and fails rather than recursing forever.
func ProtobufReferences(fd *descriptorpb.FileDescriptorProto, fds []*descriptorpb.FileDescriptorProto, schemas map[string]string) ([]SuppliedReference, error) {
	return protobufReferences(fd, fds, schemas, []string{fd.GetName()})
}

func protobufReferences(fd *descriptorpb.FileDescriptorProto, fds []*descriptorpb.FileDescriptorProto, schemas map[string]string, chain []string) ([]SuppliedReference, error) {
	refs := make([]SuppliedReference, 0, len(fd.GetDependency()))
	for _, name := range fd.GetDependency() {
		for _, seen := range chain {
			if seen == name {
				return nil, &CycleError{Chain: append(chain, name)}
			}
		}

		dep := findFileDescriptor(fds, name)
		if dep == nil {
			return nil, &NotFoundError{Name: name}
		}

		subject, err := SubjectFor(dep)
		if err != nil {
			return nil, err
		}

		schema, ok := schemas[name]
		if !ok {
			return nil, &MissingTextError{File: name}
		}

		nested, err := protobufReferences(dep, fds, schemas, append(chain, name))
		if err != nil {
			return nil, err
		}

		refs = append(refs, SuppliedReference{
			Name:       name,
			Subject:    subject,
			Schema:     schema,
			References: nested,
		})
	}

	return refs, nil
}

func findFileDescriptor(fds []*descriptorpb.FileDescriptorProto, name string) *descriptorpb.FileDescriptorProto {
	for _, fd := range fds {
		if fd.GetName() == name {
			return fd
		}
	}

	return nil
}
