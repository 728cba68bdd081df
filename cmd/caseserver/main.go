package main

// run server to provide a json API upon a digiscr case database

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bcampbell/digiscr/server"
	"github.com/bcampbell/digiscr/store/sqlstore"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var opts struct {
	verbosity int
	driver    string
	connStr   string
	port      int
	prefix    string
}

func main() {
	flag.StringVar(&opts.connStr, "db", "", "database connection string (or set DIGISCR_DB)")
	flag.StringVar(&opts.driver, "driver", "", "database driver name (defaults to sqlite3 if DIGISCR_DRIVER is unset)")
	flag.StringVar(&opts.prefix, "prefix", "", `url prefix (eg "/cases") to allow multiple servers on same port`)
	flag.IntVar(&opts.port, "port", 12345, "port to run server on")
	flag.IntVar(&opts.verbosity, "v", 0, "verbosity (0=errors only, 1=info, 2=debug)")
	flag.Parse()

	db, err := sqlstore.NewWithEnv(opts.driver, opts.connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR opening db: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	errLog := log.New(os.Stderr, "ERR: ", 0)
	db.ErrLog = errLog
	if opts.verbosity >= 2 {
		db.DebugLog = log.New(os.Stderr, "store: ", 0)
	}

	srv := server.NewServer(db, opts.prefix)
	srv.ErrLog = errLog
	if opts.verbosity > 0 {
		srv.InfoLog = log.New(os.Stderr, "INF: ", 0)
		srv.AccessLog = true
	}

	err = srv.Run(opts.port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
