package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bcampbell/digiscr/fetch"
	"gopkg.in/gcfg.v1"
)

// fileConfig is the layout of the (optional) config file, eg:
//
//	[site]
//	baseurl = https://digiscr.sci.gov.in
//	session = 788788c9ifpf1tgm12b2t56tac
//	header = "Accept-Language: en-GB,en;q=0.8"
//	delay = 2s
//
//	[output]
//	pdfdir = judgments
//	warcdir = archive
//
// Anything left out keeps its default.
type fileConfig struct {
	Site struct {
		BaseURL    string
		Session    string
		CookieName string
		CookieFile string
		UserAgent  string
		// "Name: value"
		Header     []string
		Delay      string
		Retries    int
		RetryDelay string
	}
	Output struct {
		DebugDir string
		// disable the debug copies of search responses
		NoDebug bool
		WarcDir string
		PDFDir  string
	}
}

// loadConfig returns the default fetch config, overridden by whatever is in
// filename. A missing file is only an error if mustExist is set.
func loadConfig(filename string, mustExist bool) (*fetch.Config, error) {
	conf := fetch.DefaultConfig()
	if filename == "" {
		return conf, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) && !mustExist {
		return conf, nil
	}

	raw := fileConfig{}
	err := gcfg.ReadFileInto(&raw, filename)
	if err != nil {
		return nil, err
	}
	err = applyConfig(conf, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", filename, err)
	}
	return conf, nil
}

func applyConfig(conf *fetch.Config, raw *fileConfig) error {
	site := &raw.Site
	if site.BaseURL != "" {
		conf.BaseURL = site.BaseURL
	}
	if site.Session != "" {
		conf.SessionCookie = site.Session
	}
	if site.CookieName != "" {
		conf.CookieName = site.CookieName
	}
	if site.CookieFile != "" {
		conf.CookieFile = site.CookieFile
	}
	if site.UserAgent != "" {
		conf.UserAgent = site.UserAgent
	}
	for _, h := range site.Header {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return fmt.Errorf("bad header '%s' (expected 'Name: value')", h)
		}
		conf.ExtraHeaders[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if site.Delay != "" {
		d, err := time.ParseDuration(site.Delay)
		if err != nil {
			return fmt.Errorf("bad delay: %s", err)
		}
		conf.RequestDelay = d
	}
	if site.Retries < 0 {
		return fmt.Errorf("bad retries (%d)", site.Retries)
	}
	if site.Retries > 0 {
		conf.Retries = site.Retries
	}
	if site.RetryDelay != "" {
		d, err := time.ParseDuration(site.RetryDelay)
		if err != nil {
			return fmt.Errorf("bad retrydelay: %s", err)
		}
		conf.RetryDelay = d
	}

	out := &raw.Output
	if out.DebugDir != "" {
		conf.DebugDir = out.DebugDir
	}
	if out.NoDebug {
		conf.DebugDir = ""
	}
	if out.WarcDir != "" {
		conf.WarcDir = out.WarcDir
	}
	if out.PDFDir != "" {
		conf.PDFDir = out.PDFDir
	}
	return nil
}
