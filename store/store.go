package store

import (
	"fmt"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

// Outcome reports what happened to a stashed case.
type Outcome int

const (
	Inserted Outcome = iota
	// Duplicate means a case with the same year, volume, part and title
	// was already in the store. It is not an error.
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Filter struct {
	// empty strings match everything
	Year         string
	VolumeNumber string
	PartNumber   string
	// Only return cases with ID > SinceID
	SinceID int
	// max number of cases wanted (0=no limit)
	Count int
}

// Describe returns a concise description of the filter for logging/debugging/whatever
func (filt *Filter) Describe() string {
	s := "[ "
	if filt.Year != "" {
		s += fmt.Sprintf("year %s ", filt.Year)
	}
	if filt.VolumeNumber != "" {
		s += fmt.Sprintf("vol %s ", filt.VolumeNumber)
	}
	if filt.PartNumber != "" {
		s += fmt.Sprintf("part %s ", filt.PartNumber)
	}
	if filt.SinceID > 0 {
		s += fmt.Sprintf("since %d ", filt.SinceID)
	}
	if filt.Count > 0 {
		s += fmt.Sprintf("cnt %d ", filt.Count)
	}
	s += "]"
	return s
}

// Store is the interface for anything which can hold cases.
// Cases are only ever added, never updated or deleted.
type Store interface {
	Close()
	Stash(c *Case) (Outcome, error)
	Fetch(filt *Filter) ([]*Case, error)
	FetchCount(filt *Filter) (int, error)
}
