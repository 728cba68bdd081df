package main

import (
	"time"

	"github.com/bcampbell/digiscr/extract"
	"github.com/bcampbell/digiscr/store"
	"golang.org/x/net/html"
)

// The site doesn't say which volumes and parts exist for a year, so we
// just try them all.
var (
	Volumes = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	Parts   = []string{"1", "2", "3", "4", "5"}
)

// CardFetcher returns the case cards for a single year/volume/part search.
type CardFetcher interface {
	FetchCards(year, volume, part string) ([]*html.Node, error)
}

// Downloader grabs the judgment pdf for a case.
type Downloader interface {
	Download(pdfURL string, title string) (string, error)
}

type ScrapeStats struct {
	Start time.Time
	End   time.Time

	FetchCount      int
	FetchErrorCount int
	CardCount       int
	ParseErrorCount int

	StashCount      int
	DupeCount       int
	StashErrorCount int

	DownloadCount      int
	DownloadErrorCount int
}

type Scraper struct {
	fetcher    CardFetcher
	extractor  extract.Extractor
	downloader Downloader // nil: don't download pdfs
	db         store.Store

	ErrLog  Logger
	InfoLog Logger
	Stats   ScrapeStats
}

func NewScraper(fetcher CardFetcher, extractor extract.Extractor, downloader Downloader, db store.Store) *Scraper {
	return &Scraper{
		fetcher:    fetcher,
		extractor:  extractor,
		downloader: downloader,
		db:         db,
		ErrLog:     nullLogger{},
		InfoLog:    nullLogger{},
	}
}

// Run scrapes every volume and part for the year, returning all the cases
// found. Failures are logged and skipped over, never fatal.
func (scraper *Scraper) Run(year string) []*store.Case {
	// reset the stats
	scraper.Stats = ScrapeStats{}
	scraper.Stats.Start = time.Now()
	defer func() {
		stats := &scraper.Stats
		stats.End = time.Now()
		elapsed := stats.End.Sub(stats.Start)
		scraper.InfoLog.Printf("run finished in %s (%d searches, %d cases, %d new, %d already had, %d pdfs, %d errors)\n",
			elapsed, stats.FetchCount, stats.CardCount-stats.ParseErrorCount, stats.StashCount, stats.DupeCount,
			stats.DownloadCount, stats.FetchErrorCount+stats.ParseErrorCount+stats.StashErrorCount+stats.DownloadErrorCount)
	}()

	found := []*store.Case{}
	for _, vol := range Volumes {
		for _, part := range Parts {
			found = append(found, scraper.doSearch(year, vol, part)...)
		}
	}
	return found
}

// doSearch handles a single year/volume/part combination.
func (scraper *Scraper) doSearch(year, vol, part string) []*store.Case {
	stats := &scraper.Stats

	scraper.InfoLog.Printf("Fetching Year %s - Volume %s - Part %s\n", year, vol, part)
	stats.FetchCount++
	cards, err := scraper.fetcher.FetchCards(year, vol, part)
	if err != nil {
		scraper.ErrLog.Printf("Fetch error for %s Vol %s Pt %s: %s\n", year, vol, part, err)
		stats.FetchErrorCount++
		return nil
	}
	scraper.InfoLog.Printf("   Found %d card blocks\n", len(cards))
	stats.CardCount += len(cards)

	out := []*store.Case{}
	for _, card := range cards {
		c, err := scraper.extractor.Extract(card)
		if err != nil {
			scraper.ErrLog.Printf("Parse error (%s Vol %s Pt %s): %s\n", year, vol, part, err)
			stats.ParseErrorCount++
			continue
		}
		c.Year = year
		c.VolumeNumber = vol
		c.PartNumber = part
		out = append(out, c)

		scraper.stash(c)

		if c.PDFLink != "" && scraper.downloader != nil {
			filename, err := scraper.downloader.Download(c.PDFLink, c.Title)
			if err != nil {
				scraper.ErrLog.Printf("Failed PDF for %s: %s\n", c.Title, err)
				stats.DownloadErrorCount++
			} else {
				scraper.InfoLog.Printf("Downloaded PDF: %s\n", filename)
				stats.DownloadCount++
			}
		}
	}
	return out
}

// stash a case in the db. A failure loses the case from the db, but it
// stays in the results.
func (scraper *Scraper) stash(c *store.Case) {
	outcome, err := scraper.db.Stash(c)
	if err != nil {
		scraper.ErrLog.Printf("DB insert error for %s: %s\n", c.Title, err)
		scraper.Stats.StashErrorCount++
		return
	}
	switch outcome {
	case store.Inserted:
		scraper.Stats.StashCount++
	case store.Duplicate:
		scraper.Stats.DupeCount++
	}
}
