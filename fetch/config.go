package fetch

import (
	"time"
)

// Config holds everything needed to talk to the judgment repository.
// The session cookie is not obtained by any login flow; when it expires a
// fresh one has to be copied out of a browser.
type Config struct {
	// BaseURL is the site origin, eg "https://digiscr.sci.gov.in"
	BaseURL string
	// SessionCookie is the value sent as the CookieName cookie
	SessionCookie string
	CookieName    string
	// CookieFile, if set, is a Netscape-format cookies.txt to load as well
	CookieFile string
	UserAgent  string
	// ExtraHeaders are sent with every request.
	// Origin and Referer default to BaseURL if not given here.
	ExtraHeaders map[string]string

	// RequestDelay is the minimum time between requests to the site
	RequestDelay time.Duration
	// Retries is the number of extra attempts made for a failed search
	Retries    int
	RetryDelay time.Duration

	// DebugDir gets a copy of every search response body ("" to disable)
	DebugDir string
	// WarcDir gets .warc.gz archives of search responses ("" to disable)
	WarcDir string
	// PDFDir is where downloaded judgments go
	PDFDir string
}

const (
	DefaultBaseURL = "https://digiscr.sci.gov.in"
	DefaultSession = "788788c9ifpf1tgm12b2t56tac"
	DefaultUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
)

// DefaultConfig returns a config which mimics a Chrome browser making XHR
// requests to the live site.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		SessionCookie: DefaultSession,
		CookieName:    "PHPSESSID",
		UserAgent:     DefaultUA,
		ExtraHeaders: map[string]string{
			"Accept":             "*/*",
			"Accept-Language":    "en-US,en;q=0.9",
			"Connection":         "keep-alive",
			"X-Requested-With":   "XMLHttpRequest",
			"sec-ch-ua":          `"Google Chrome";v="135", "Not-A.Brand";v="8", "Chromium";v="135"`,
			"sec-ch-ua-mobile":   "?0",
			"sec-ch-ua-platform": `"Windows"`,
		},
		RequestDelay: 1 * time.Second,
		Retries:      0,
		RetryDelay:   5 * time.Second,
		DebugDir:     "debug_html",
		PDFDir:       "pdfs",
	}
}
