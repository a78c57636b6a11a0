package ksrt

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/riferrei/srclient"
)

// FprintSchema writes a registered schema to w in a human-readable form:
// id, type, the schema text indented one tab, and a table of its
// registered references when there are any.
func FprintSchema(w io.Writer, schema *srclient.Schema) {
	fmt.Fprintf(w, "id: %d\n", schema.ID())

	schemaType := srclient.Avro
	if t := schema.SchemaType(); t != nil {
		schemaType = *t
	}

	fmt.Fprintf(w, "type: %s\n", schemaType)

	fmt.Fprintln(w, `schema:`)
	for _, line := range strings.Split(strings.TrimSuffix(schema.Schema(), "\n"), "\n") {
		fmt.Fprintf(w, "\t%s\n", line)
	}

	refs := schema.References()
	if len(refs) == 0 {
		return
	}

	fmt.Fprintln(w, `references:`)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{`Name`, `Subject`, `Version`})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})
	table.SetAutoFormatHeaders(true)

	for _, ref := range refs {
		table.Append([]string{ref.Name, ref.Subject, fmt.Sprint(ref.Version)})
	}

	table.Render()
}
