// Package source reads key lists from delimited files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

type Options struct {
	SkipHeader bool
	Comma      rune // field delimiter, ',' when zero
}

// ReadKeys returns the first column of every record in r, in order.
// Blank lines are skipped.
func ReadKeys(r io.Reader, opts Options) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	var keys []string
	header := opts.SkipHeader
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return keys, nil
		}
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}
		keys = append(keys, record[0])
	}
}

func ReadFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	keys, err := ReadKeys(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return keys, nil
}
