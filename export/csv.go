package export

// csv output of scraped cases

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/bcampbell/digiscr/store"
)

// Write outputs cases as csv, in store.Columns order, optionally preceded
// by a header row.
func Write(w io.Writer, cases []*store.Case, header bool) error {
	out := csv.NewWriter(w)
	if header {
		out.Write(store.Columns)
	}
	for _, c := range cases {
		out.Write(c.Row())
	}
	out.Flush()
	return out.Error()
}

// WriteFile appends cases to the csv file at filename.
// A new file gets a header row, an existing one just gets more rows.
// Returns true if the file already existed.
func WriteFile(filename string, cases []*store.Case) (bool, error) {
	_, err := os.Stat(filename)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	outFile, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return exists, err
	}
	err = Write(outFile, cases, !exists)
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	return exists, err
}
