package sqlstore

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/bcampbell/digiscr/store"
)

type nullLogger struct{}

func (l nullLogger) Printf(format string, v ...interface{}) {
}

// SQLStore stashes cases in an SQL database
type SQLStore struct {
	db         *sql.DB
	driverName string
	ErrLog     store.Logger
	DebugLog   store.Logger
}

// eg "postgres", "postgres://username@localhost/dbname"
// eg "sqlite3", "cases.db"
func New(driver string, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}
	return NewFromDB(driver, db)
}

// NewFromDB wraps an already-open database, creating the schema if needed.
func NewFromDB(driver string, db *sql.DB) (*SQLStore, error) {
	err := db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	ss := SQLStore{
		db:         db,
		driverName: driver,
		ErrLog:     nullLogger{},
		DebugLog:   nullLogger{},
	}

	err = ss.ensureSchema()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ss, nil
}

// Same as New(), but if driver or connStr is missing, will try and read them
// from environment vars: DIGISCR_DRIVER & DIGISCR_DB.
// If both driver and DIGISCR_DRIVER are empty, default is "sqlite3".
func NewWithEnv(driver string, connStr string) (*SQLStore, error) {
	if connStr == "" {
		connStr = os.Getenv("DIGISCR_DB")
	}
	if driver == "" {
		driver = os.Getenv("DIGISCR_DRIVER")
		if driver == "" {
			driver = "sqlite3"
		}
	}

	if connStr == "" {
		return nil, fmt.Errorf("no database specified (set DIGISCR_DB?)")
	}

	return New(driver, connStr)
}

func (ss *SQLStore) Close() {
	if ss.db != nil {
		ss.db.Close()
		ss.db = nil
	}
}

func (ss *SQLStore) rebind(q string) string {
	return rebind(bindType(ss.driverName), q)
}

// Build a WHERE clause from a filter.
func buildWhere(filt *store.Filter) (string, []interface{}) {
	params := []interface{}{}
	frags := []string{}

	if filt.Year != "" {
		frags = append(frags, "year=?")
		params = append(params, filt.Year)
	}
	if filt.VolumeNumber != "" {
		frags = append(frags, "volume_number=?")
		params = append(params, filt.VolumeNumber)
	}
	if filt.PartNumber != "" {
		frags = append(frags, "part_number=?")
		params = append(params, filt.PartNumber)
	}
	if filt.SinceID > 0 {
		frags = append(frags, "id>?")
		params = append(params, filt.SinceID)
	}

	var whereClause string
	if len(frags) > 0 {
		whereClause = "WHERE " + strings.Join(frags, " AND ")
	}
	return whereClause, params
}

func (ss *SQLStore) FetchCount(filt *store.Filter) (int, error) {
	whereClause, params := buildWhere(filt)
	q := `SELECT COUNT(*) FROM cases ` + whereClause
	var cnt int
	err := ss.db.QueryRow(ss.rebind(q), params...).Scan(&cnt)
	return cnt, err
}

// Fetch returns all the cases matching the filter, in the order they were added.
func (ss *SQLStore) Fetch(filt *store.Filter) ([]*store.Case, error) {
	whereClause, params := buildWhere(filt)

	q := `SELECT id,` + strings.Join(store.Columns, ",") + ` FROM cases ` + whereClause + ` ORDER BY id`
	if filt.Count > 0 {
		q += fmt.Sprintf(" LIMIT %d", filt.Count)
	}

	ss.DebugLog.Printf("fetch: %s\n", q)
	ss.DebugLog.Printf("fetch params: %+v\n", params)

	rows, err := ss.db.Query(ss.rebind(q), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*store.Case{}
	for rows.Next() {
		c := &store.Case{}
		var pdfLink, htmlLink, flipLink, splitLink sql.NullString
		err := rows.Scan(&c.ID,
			&c.Year,
			&c.VolumeNumber,
			&c.PartNumber,
			&c.Title,
			&c.Citations,
			&pdfLink,
			&c.CaseType,
			&c.Date,
			&c.Volume,
			&c.Judges,
			&htmlLink,
			&flipLink,
			&splitLink)
		if err != nil {
			return nil, err
		}
		c.PDFLink = pdfLink.String
		c.HTMLLink = htmlLink.String
		c.FlipLink = flipLink.String
		c.SplitLink = splitLink.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
