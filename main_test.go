package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bcampbell/digiscr/fetch"
)

func TestValidYear(t *testing.T) {
	testData := []struct {
		in     string
		expect bool
	}{
		{"1999", true},
		{"2024", true},
		{"0000", true},
		{"99", false},
		{"19999", false},
		{"20a4", false},
		{"", false},
		{" 1999", false},
		{"١٩٩٩", false}, // non-ascii digits
	}
	for _, dat := range testData {
		got := validYear(dat.in)
		if got != dat.expect {
			t.Errorf("validYear(%q): expected %v, got %v", dat.in, dat.expect, got)
		}
	}
}

func TestPromptYear(t *testing.T) {
	out := &bytes.Buffer{}
	year, err := promptYear(strings.NewReader("  2005 \n"), out, true)
	if err != nil {
		t.Fatal(err)
	}
	if year != "2005" {
		t.Errorf("expected 2005, got %q", year)
	}
	if out.String() != "Enter the year to scrape: " {
		t.Errorf("unexpected prompt %q", out.String())
	}

	// piped input, no trailing newline, no prompt
	out.Reset()
	year, err = promptYear(strings.NewReader("1987"), out, false)
	if err != nil {
		t.Fatal(err)
	}
	if year != "1987" || out.Len() != 0 {
		t.Errorf("got %q (prompt %q)", year, out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "digiscr")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "test.cfg")
	cfgTxt := `[site]
baseurl = http://localhost:8080
session = abc123
header = "Accept-Language: fr"
header = "X-Extra: yes"
delay = 250ms
retries = 2

[output]
pdfdir = judgments
nodebug = true
`
	err = ioutil.WriteFile(filename, []byte(cfgTxt), 0644)
	if err != nil {
		t.Fatal(err)
	}

	conf, err := loadConfig(filename, true)
	if err != nil {
		t.Fatal(err)
	}
	if conf.BaseURL != "http://localhost:8080" || conf.SessionCookie != "abc123" {
		t.Errorf("site not applied: %+v", conf)
	}
	if conf.ExtraHeaders["Accept-Language"] != "fr" || conf.ExtraHeaders["X-Extra"] != "yes" {
		t.Errorf("headers not applied: %v", conf.ExtraHeaders)
	}
	if conf.RequestDelay != 250*time.Millisecond || conf.Retries != 2 {
		t.Errorf("got delay %s retries %d", conf.RequestDelay, conf.Retries)
	}
	if conf.PDFDir != "judgments" || conf.DebugDir != "" {
		t.Errorf("output not applied: pdfdir %q debugdir %q", conf.PDFDir, conf.DebugDir)
	}
	// untouched values keep their defaults
	def := fetch.DefaultConfig()
	if conf.UserAgent != def.UserAgent || conf.CookieName != def.CookieName || conf.RetryDelay != def.RetryDelay {
		t.Errorf("defaults lost: %+v", conf)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	conf, err := loadConfig("no-such-file.cfg", false)
	if err != nil {
		t.Fatal(err)
	}
	if conf.BaseURL != fetch.DefaultBaseURL {
		t.Errorf("expected default base url, got %s", conf.BaseURL)
	}

	_, err = loadConfig("no-such-file.cfg", true)
	if err == nil {
		t.Errorf("expected error for missing explicit config")
	}
}

func TestLoadConfigBadHeader(t *testing.T) {
	f, err := ioutil.TempFile("", "digiscr*.cfg")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.WriteString("[site]\nheader = nocolon\n")
	f.Close()

	_, err = loadConfig(f.Name(), true)
	if err == nil {
		t.Errorf("expected error for bad header")
	}
}
