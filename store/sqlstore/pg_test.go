package sqlstore

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// TestPostgres runs the store tests against a postgresql database.
// The schema is created automatically, but the database must already exist.
// The connection string should be in envvar DIGISCR_PGTEST.
// If it is not set, the postgres testing is skippped.
//
// Example setup:
//
//    $ sudo -u postgres createuser --no-superuser --no-createrole --no-createdb digitest
//    $ sudo -u postgres createdb -O digitest -E utf8 digiscrtest
//    $ export DIGISCR_PGTEST="user=digitest dbname=digiscrtest host=/var/run/postgresql sslmode=disable"
//    $ go test
//
func TestPostgres(t *testing.T) {

	connStr := os.Getenv("DIGISCR_PGTEST")
	if connStr == "" {
		t.Skip("DIGISCR_PGTEST not set - skipping postgresql tests")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err.Error())
	}

	ss, err := NewFromDB("postgres", db)
	if err != nil {
		t.Fatal(err.Error())
	}

	// Make sure we don't accidentally screw up real data!
	var cnt int
	err = db.QueryRow("SELECT COUNT(*) FROM cases").Scan(&cnt)
	if err != nil {
		t.Fatal(err.Error())
	}
	if cnt > 0 {
		t.Fatal("Database already contains cases - refusing to clobber.")
	}

	// clear out db when we're done.
	defer func() {
		_, err = db.Exec("DELETE FROM cases")
		if err != nil {
			t.Fatal(err.Error())
		}
		ss.Close()
	}()

	performDBTests(t, ss)
}
