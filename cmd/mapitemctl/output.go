package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/diwise/map-items/pkg/form"
	"github.com/diwise/map-items/pkg/model"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printFieldsTable(w io.Writer, fields model.FieldSet) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\n", f.Key, displayValue(f.Value))
	}
	tw.Flush()
}

func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case *form.File:
		return fmt.Sprintf("<file %q, %d bytes>", t.Filename, len(t.Content))
	default:
		return fmt.Sprintf("%v", t)
	}
}
