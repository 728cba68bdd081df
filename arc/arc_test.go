package arc

import (
	"bytes"
	"compress/gzip"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSpreadPath(t *testing.T) {
	testData := []struct{ in, out string }{
		{"12345678", filepath.Join("1", "12", "123")},
		{"2e90f06712788ea6fefe1e613d651e78.warc", filepath.Join("2", "2e", "2e9")},
	}

	for _, dat := range testData {
		got := spreadPath(dat.in)

		if got != dat.out {
			t.Errorf(`spreadPath("%s") failed (got "%s", expected "%s")`, dat.in, got, dat.out)
			return
		}
	}
}

func TestSaveBody(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug_html")
	a := &Archiver{DebugDir: dir}
	body := []byte("<ul class=\"linking-section\"></ul>\n")

	for i := 0; i < 2; i++ {
		filename, err := a.SaveBody("2001", "3", "4", body)
		if err != nil {
			t.Fatalf("SaveBody: %s", err)
		}
		if filename != filepath.Join(dir, "debug_2001_3_4.html") {
			t.Errorf("unexpected filename %s", filename)
		}
		got, err := ioutil.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, body) {
			t.Errorf("body mismatch: %q", got)
		}
	}
}

func TestDisabled(t *testing.T) {
	a := &Archiver{}
	filename, err := a.SaveBody("2001", "1", "1", []byte("x"))
	if err != nil || filename != "" {
		t.Errorf("expected no-op, got %q, %v", filename, err)
	}
	filename, err = a.ArchiveResponse(&http.Response{}, nil, "http://example.com", "", time.Now())
	if err != nil || filename != "" {
		t.Errorf("expected no-op, got %q, %v", filename, err)
	}
}

func TestArchiveResponse(t *testing.T) {
	dir := t.TempDir()
	a := &Archiver{WarcDir: dir}
	srcURL := "https://digiscr.sci.gov.in/fetch_judgement_ajax"
	resp := &http.Response{
		Status:     "200 OK",
		StatusCode: 200,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Request:    httptest.NewRequest("POST", srcURL, nil),
	}
	body := []byte("<li class=\"linumbr\">hello</li>")

	f1, err := a.ArchiveResponse(resp, body, srcURL, "year=2001&volume=1&partno=1", time.Now())
	if err != nil {
		t.Fatalf("ArchiveResponse: %s", err)
	}
	f2, err := a.ArchiveResponse(resp, body, srcURL, "year=2001&volume=1&partno=2", time.Now())
	if err != nil {
		t.Fatalf("ArchiveResponse: %s", err)
	}
	if f1 == f2 {
		t.Errorf("different keys gave same file %s", f1)
	}
	if !strings.HasPrefix(f1, filepath.Join(dir, "digiscr.sci.gov.in")) {
		t.Errorf("unexpected path %s", f1)
	}

	in, err := os.Open(f1)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	gzr, err := gzip.NewReader(in)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := ioutil.ReadAll(gzr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(raw, body) {
		t.Errorf("archived warc doesn't contain body")
	}
}

func TestArchiveResponseNoRequest(t *testing.T) {
	dir := t.TempDir()
	a := &Archiver{WarcDir: dir}
	resp := &http.Response{StatusCode: 200, Header: http.Header{}}
	filename, err := a.ArchiveResponse(resp, []byte("x"), "https://digiscr.sci.gov.in/", "k", time.Now())
	if err == nil {
		t.Errorf("expected error for response without request (got %q)", filename)
	}
}
