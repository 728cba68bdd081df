package sqlstore

import (
	"fmt"
)

// ensureSchema creates the cases table if it isn't already there.
// Safe to call on every open.
func (ss *SQLStore) ensureSchema() error {
	var idCol string
	switch ss.driverName {
	case "sqlite3":
		idCol = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	case "postgres":
		idCol = "id SERIAL PRIMARY KEY"
	default:
		return fmt.Errorf("no schema support for driver %q", ss.driverName)
	}

	stmt := `CREATE TABLE IF NOT EXISTS cases (
		` + idCol + `,
		year TEXT,
		volume_number TEXT,
		part_number TEXT,
		title TEXT,
		citations TEXT,
		pdf_link TEXT,
		case_type TEXT,
		date TEXT,
		volume TEXT,
		judges TEXT,
		html_link TEXT,
		flip_link TEXT,
		split_link TEXT,
		UNIQUE(year, volume_number, part_number, title))`

	_, err := ss.db.Exec(stmt)
	return err
}
