package sqlstore

import (
	"strconv"
	"strings"
)

// Adapted from github.com/jmoiron/sqlx (MIT license).
// We only need to handle the two drivers we support.

// Bindvar types supported by rebind.
const (
	UNKNOWN = iota
	QUESTION
	DOLLAR
)

// bindType returns the bindtype for a given database given a drivername.
func bindType(driverName string) int {
	switch driverName {
	case "postgres", "pgx", "pq-timeouts", "cloudsqlpostgres":
		return DOLLAR
	case "sqlite3":
		return QUESTION
	}
	return UNKNOWN
}

// rebind a query from the default bindtype (QUESTION) to the target bindtype.
func rebind(bindType int, query string) string {
	if bindType != DOLLAR {
		return query
	}

	rqb := make([]byte, 0, len(query)+10)

	var i, j int
	for i = strings.Index(query, "?"); i != -1; i = strings.Index(query, "?") {
		rqb = append(rqb, query[:i]...)
		rqb = append(rqb, '$')
		j++
		rqb = strconv.AppendInt(rqb, int64(j), 10)
		query = query[i+1:]
	}

	return string(append(rqb, query...))
}
