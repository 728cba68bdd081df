package server

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcampbell/digiscr/store"
	"github.com/bcampbell/digiscr/store/sqlstore"
	_ "github.com/mattn/go-sqlite3"
)

func newTestServer(t *testing.T) *httptest.Server {
	db, err := sqlstore.New("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(db.Close)

	for _, year := range []string{"1999", "2000"} {
		for i := 0; i < 3; i++ {
			c := &store.Case{
				Year:         year,
				VolumeNumber: "1",
				PartNumber:   fmt.Sprintf("%d", i+1),
				Title:        fmt.Sprintf("Case %d of %s", i, year),
			}
			_, err := db.Stash(c)
			if err != nil {
				t.Fatal(err)
			}
		}
	}

	srv := NewServer(db, "/digiscr")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, u string, v interface{}) int {
	resp, err := http.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return resp.StatusCode
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		t.Fatalf("%s: %s", u, err)
	}
	return resp.StatusCode
}

func TestCases(t *testing.T) {
	ts := newTestServer(t)

	testData := []struct {
		query     string
		expectCnt int
		expectNxt bool
	}{
		{"", 6, false},
		{"?year=1999", 3, false},
		{"?year=2000&part=2", 1, false},
		{"?count=2", 2, true},
		{"?year=1999&volume=2", 0, false},
	}

	for _, dat := range testData {
		var res CasesResult
		code := getJSON(t, ts.URL+"/digiscr/api/cases"+dat.query, &res)
		if code != 200 {
			t.Errorf("%s: got HTTP %d", dat.query, code)
			continue
		}
		if len(res.Cases) != dat.expectCnt {
			t.Errorf("%s: expected %d cases, got %d", dat.query, dat.expectCnt, len(res.Cases))
		}
		if (res.Next.SinceID != 0) != dat.expectNxt {
			t.Errorf("%s: unexpected next since_id %d", dat.query, res.Next.SinceID)
		}
	}

	// page through using since_id
	var page CasesResult
	getJSON(t, ts.URL+"/digiscr/api/cases?count=4", &page)
	var rest CasesResult
	getJSON(t, fmt.Sprintf("%s/digiscr/api/cases?since_id=%d", ts.URL, page.Next.SinceID), &rest)
	if len(rest.Cases) != 2 || rest.Cases[0].Title != "Case 1 of 2000" {
		t.Errorf("bad second page: %+v", rest.Cases)
	}
}

func TestCount(t *testing.T) {
	ts := newTestServer(t)

	var res CountResult
	code := getJSON(t, ts.URL+"/digiscr/api/count?year=2000&count=1", &res)
	if code != 200 || res.Count != 3 {
		t.Errorf("expected 3, got %d (HTTP %d)", res.Count, code)
	}
}

func TestBadParams(t *testing.T) {
	ts := newTestServer(t)

	for _, query := range []string{"?year=nineteen", "?count=-1", "?since_id=x", "?count=1000000"} {
		for _, endpoint := range []string{"/digiscr/api/cases", "/digiscr/api/count"} {
			resp, err := http.Get(ts.URL + endpoint + query)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != 400 {
				t.Errorf("%s%s: expected 400, got %d", endpoint, query, resp.StatusCode)
			}
		}
	}
}

func TestCompressed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest("GET", ts.URL+"/digiscr/api/cases", nil)
	if err != nil {
		t.Fatal(err)
	}
	// setting it ourselves stops the transport decompressing for us
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzipped response, got '%s'", resp.Header.Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var res CasesResult
	err = json.NewDecoder(zr).Decode(&res)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cases) != 6 {
		t.Errorf("expected 6 cases, got %d", len(res.Cases))
	}
}
