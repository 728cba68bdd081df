package slurp

// client for the caseserver api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bcampbell/digiscr/store"
)

// Slurper is a client for talking to a case server
type Slurper struct {
	Client *http.Client
	// eg "http://localhost:12345/cases"
	Location string
	// PageSize is the number of cases requested at a time (0=server default)
	PageSize int
}

func NewSlurper(location string) *Slurper {
	return &Slurper{Location: location}
}

// Msg is a single message - holds a case or an error
type Msg struct {
	Case  *store.Case
	Error string
}

type casesResponse struct {
	Cases []*store.Case `json:"cases"`
	Next  struct {
		SinceID int `json:"since_id,omitempty"`
	} `json:"next"`
}

func filterParams(filt *store.Filter) url.Values {
	v := url.Values{}
	if filt.Year != "" {
		v.Set("year", filt.Year)
	}
	if filt.VolumeNumber != "" {
		v.Set("volume", filt.VolumeNumber)
	}
	if filt.PartNumber != "" {
		v.Set("part", filt.PartNumber)
	}
	if filt.SinceID > 0 {
		v.Set("since_id", strconv.Itoa(filt.SinceID))
	}
	if filt.Count > 0 {
		v.Set("count", strconv.Itoa(filt.Count))
	}
	return v
}

func (s *Slurper) getJSON(u string, dest interface{}) error {
	client := s.Client
	if client == nil {
		client = &http.Client{}
	}

	resp, err := client.Get(u)
	if err != nil {
		return fmt.Errorf("HTTP Get failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP Error: %s (%s)", resp.Status, u)
	}
	err = json.NewDecoder(resp.Body).Decode(dest)
	if err != nil {
		return fmt.Errorf("Decode error: %s", err)
	}
	return nil
}

// Slurp downloads all the cases matching the filter, a page at a time.
// Returns a channel which streams out messages. Errors are sent as a
// Msg, and end the stream. filt.Count and filt.SinceID are ignored.
func (s *Slurper) Slurp(filt *store.Filter) chan Msg {
	out := make(chan Msg)

	go func() {
		defer close(out)
		f := *filt
		f.SinceID = 0
		f.Count = s.PageSize
		for {
			u := s.Location + "/api/cases?" + filterParams(&f).Encode()
			var page casesResponse
			err := s.getJSON(u, &page)
			if err != nil {
				out <- Msg{Error: err.Error()}
				return
			}
			for _, c := range page.Cases {
				out <- Msg{Case: c}
			}
			if page.Next.SinceID == 0 {
				return
			}
			f.SinceID = page.Next.SinceID
		}
	}()

	return out
}

// Count returns the number of cases on the server matching the filter.
func (s *Slurper) Count(filt *store.Filter) (int, error) {
	var res struct {
		Count int `json:"count"`
	}
	err := s.getJSON(s.Location+"/api/count?"+filterParams(filt).Encode(), &res)
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}
