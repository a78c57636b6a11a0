package ksrt

import (
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/riferrei/srclient"
	"github.com/tryfix/errors"
)

// validateSchema parse-checks a retrieved schema's text. Only avro schemas
// have a parser wired in; other types pass through with a trace.
func (r *Registry) validateSchema(schema *srclient.Schema) error {
	schemaType := srclient.Avro
	if t := schema.SchemaType(); t != nil {
		schemaType = *t
	}

	switch schemaType {
	case srclient.Avro:
		if _, err := avro.Parse(schema.Schema()); err != nil {
			return errors.WithPrevious(err, fmt.Sprintf(`schema parsing error for schema id %d`, schema.ID()))
		}
	default:
		r.logger.Trace(`ksrt.registry`, fmt.Sprintf(`no validation available for schema type %s`, schemaType))
	}

	return nil
}
