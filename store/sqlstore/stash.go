package sqlstore

import (
	"database/sql"
	"strings"

	"github.com/bcampbell/digiscr/store"
)

// Stash adds a case to the db.
// If the (year, volume_number, part_number, title) combination is already
// present the insert is skipped and Duplicate is returned.
func (ss *SQLStore) Stash(c *store.Case) (store.Outcome, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(store.Columns)), ",")
	q := `INSERT INTO cases (` + strings.Join(store.Columns, ",") + `) VALUES (` + placeholders + `)
		ON CONFLICT (year, volume_number, part_number, title) DO NOTHING`

	result, err := ss.db.Exec(ss.rebind(q),
		c.Year,
		c.VolumeNumber,
		c.PartNumber,
		c.Title,
		c.Citations,
		nullable(c.PDFLink),
		c.CaseType,
		c.Date,
		c.Volume,
		c.Judges,
		nullable(c.HTMLLink),
		nullable(c.FlipLink),
		nullable(c.SplitLink))
	if err != nil {
		return store.Inserted, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return store.Inserted, err
	}
	if n == 0 {
		ss.DebugLog.Printf("already got %s/%s/%s %q\n", c.Year, c.VolumeNumber, c.PartNumber, c.Title)
		return store.Duplicate, nil
	}
	return store.Inserted, nil
}

// links are NULL in the db when absent
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
