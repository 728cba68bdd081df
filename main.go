package main

// scrape case metadata and judgments for a year from the digiscr
// judgment repository, into a db and a csv file.

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bcampbell/digiscr/export"
	"github.com/bcampbell/digiscr/extract"
	"github.com/bcampbell/digiscr/fetch"
	"github.com/bcampbell/digiscr/store/sqlstore"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/ssh/terminal"
)

const usageTxt = `usage: digiscr [options]

Scrape all the cases for a year from digiscr.sci.gov.in, stashing them in a
db (cases.db by default), appending them to a csv file and downloading the
judgment pdfs.
Prompts for the year unless -year is given.

`

const defaultConfigFile = "digiscr.cfg"

var opts struct {
	configFile string
	driver     string
	db         string
	csvFile    string
	year       string
	verbosity  int
	noPDF      bool
}

type Logger interface {
	Printf(format string, v ...interface{})
}

type nullLogger struct{}

func (l nullLogger) Printf(format string, v ...interface{}) {
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageTxt)
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.StringVar(&opts.configFile, "c", defaultConfigFile, "config file (optional)")
	flag.StringVar(&opts.driver, "driver", "", "database driver (defaults to sqlite3 if DIGISCR_DRIVER is not set)")
	flag.StringVar(&opts.db, "db", "", "database connection string (defaults to cases.db if DIGISCR_DB is not set)")
	flag.StringVar(&opts.csvFile, "csv", "cases.csv", "csv file to append results to")
	flag.StringVar(&opts.year, "year", "", "year to scrape (prompts if not given)")
	flag.IntVar(&opts.verbosity, "v", 1, "verbosity of output (0=errors only 1=info 2=debug)")
	flag.BoolVar(&opts.noPDF, "nopdf", false, "don't download judgment pdfs")
	flag.Parse()

	errLog := log.New(os.Stderr, "ERR: ", 0)
	var infoLog Logger = nullLogger{}
	if opts.verbosity > 0 {
		infoLog = log.New(os.Stderr, "INF: ", 0)
	}

	conf, err := loadConfig(opts.configFile, opts.configFile != defaultConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	year := opts.year
	if year == "" {
		interactive := terminal.IsTerminal(int(os.Stdin.Fd()))
		year, err = promptYear(os.Stdin, os.Stdout, interactive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
	}
	if !validYear(year) {
		fmt.Println("Invalid year entered. Please enter a 4-digit year.")
		return
	}

	connStr := opts.db
	if connStr == "" && os.Getenv("DIGISCR_DB") == "" {
		connStr = "cases.db"
	}
	db, err := sqlstore.NewWithEnv(opts.driver, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR opening db: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()
	db.ErrLog = errLog
	if opts.verbosity >= 2 {
		db.DebugLog = log.New(os.Stderr, "store: ", 0)
	}

	client, err := fetch.NewClient(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	client.ErrLog = errLog
	if opts.verbosity >= 2 {
		client.InfoLog = infoLog
	}

	var downloader Downloader
	if !opts.noPDF {
		downloader = client
	}
	scraper := NewScraper(client, extract.NewCardExtractor(conf.BaseURL), downloader, db)
	scraper.ErrLog = errLog
	scraper.InfoLog = infoLog

	cases := scraper.Run(year)

	appended, err := export.WriteFile(opts.csvFile, cases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR writing %s: %s\n", opts.csvFile, err)
		os.Exit(1)
	}
	if appended {
		fmt.Printf("Appended %d cases to %s\n", len(cases), opts.csvFile)
	} else {
		fmt.Printf("Created and saved %d cases to %s\n", len(cases), opts.csvFile)
	}
}

// promptYear reads a single line from in. The prompt is only shown if
// interactive is set.
func promptYear(in io.Reader, out io.Writer, interactive bool) (string, error) {
	if interactive {
		fmt.Fprint(out, "Enter the year to scrape: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// validYear accepts exactly four ascii digits
func validYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
