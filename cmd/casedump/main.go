package main

// dump cases from a digiscr database (or a running caseserver) out as csv

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bcampbell/digiscr/export"
	"github.com/bcampbell/digiscr/slurp"
	"github.com/bcampbell/digiscr/store"
	"github.com/bcampbell/digiscr/store/sqlstore"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var opts struct {
	driver  string
	connStr string
	year    string
	volume  string
	part    string
	outFile string
	server  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.connStr, "db", "", "database connection string (or set DIGISCR_DB)")
	flag.StringVar(&opts.driver, "driver", "", "database driver name (defaults to sqlite3 if DIGISCR_DRIVER is unset)")
	flag.StringVar(&opts.year, "year", "", "only dump cases from this year")
	flag.StringVar(&opts.volume, "volume", "", "only dump cases from this volume")
	flag.StringVar(&opts.part, "part", "", "only dump cases from this part")
	flag.StringVar(&opts.outFile, "o", "", "output file (default stdout)")
	flag.StringVar(&opts.server, "server", "", `fetch from a caseserver instead of a db (eg "http://localhost:12345/cases")`)
	flag.Parse()

	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	filt := &store.Filter{
		Year:         opts.year,
		VolumeNumber: opts.volume,
		PartNumber:   opts.part,
	}

	var cases []*store.Case
	var err error
	if opts.server != "" {
		cases, err = fetchRemote(opts.server, filt)
	} else {
		cases, err = fetchLocal(filt)
	}
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if opts.outFile != "" {
		f, err := os.Create(opts.outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	err = export.Write(out, cases, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d cases %s\n", len(cases), filt.Describe())
	return nil
}

func fetchLocal(filt *store.Filter) ([]*store.Case, error) {
	db, err := sqlstore.NewWithEnv(opts.driver, opts.connStr)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Fetch(filt)
}

func fetchRemote(location string, filt *store.Filter) ([]*store.Case, error) {
	cases := []*store.Case{}
	for msg := range slurp.NewSlurper(location).Slurp(filt) {
		if msg.Error != "" {
			return nil, fmt.Errorf("%s", msg.Error)
		}
		cases = append(cases, msg.Case)
	}
	return cases, nil
}
