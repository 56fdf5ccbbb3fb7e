package batch

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// WriteTSV writes "input<TAB>output" per record, or the output alone when
// quiet is set.
func WriteTSV(w io.Writer, records []Record, quiet bool) error {
	for _, r := range records {
		var err error
		if quiet {
			_, err = fmt.Fprintln(w, r.Output)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", r.Input, r.Output)
		}
		if err != nil {
			return fmt.Errorf("writing record %d: %w", r.Line, err)
		}
	}
	return nil
}

// WriteJSON writes one JSON object per record.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding record %d: %w", r.Line, err)
		}
	}
	return nil
}
