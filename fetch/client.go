package fetch

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/bcampbell/arts/util"
	"github.com/bcampbell/biscuit"
	"github.com/bcampbell/digiscr/arc"
	"golang.org/x/net/html"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

type nullLogger struct{}

func (l nullLogger) Printf(format string, v ...interface{}) {
}

// SearchPath is the ajax endpoint which returns a page of cards
const SearchPath = "/fetch_judgement_ajax"

var cardSel = cascadia.MustCompile("ul.linking-section > li.linumbr")

// Client performs searches and downloads against the judgment repository.
type Client struct {
	conf    Config
	base    *url.URL
	client  *http.Client
	archive *arc.Archiver

	ErrLog  Logger
	InfoLog Logger
}

func NewClient(conf *Config) (*Client, error) {
	base, err := url.Parse(conf.BaseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("bad base url '%s'", conf.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if conf.SessionCookie != "" {
		jar.SetCookies(base, []*http.Cookie{
			{Name: conf.CookieName, Value: conf.SessionCookie},
		})
	}
	if conf.CookieFile != "" {
		cookieFile, err := os.Open(conf.CookieFile)
		if err != nil {
			return nil, err
		}
		defer cookieFile.Close()
		cookies, err := biscuit.ReadCookies(cookieFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %s", conf.CookieFile, err)
		}
		jar.SetCookies(base, cookies)
	}

	// use politetripper to avoid hammering the server
	transport := util.NewPoliteTripper()
	transport.PerHostDelay = conf.RequestDelay

	c := &Client{
		conf: *conf,
		base: base,
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
		},
		archive: &arc.Archiver{DebugDir: conf.DebugDir, WarcDir: conf.WarcDir},
		ErrLog:  nullLogger{},
		InfoLog: nullLogger{},
	}
	return c, nil
}

// SearchURL returns the full url of the search endpoint.
func (c *Client) SearchURL() string {
	return strings.TrimRight(c.conf.BaseURL, "/") + SearchPath
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Origin", strings.TrimRight(c.conf.BaseURL, "/"))
	req.Header.Set("Referer", strings.TrimRight(c.conf.BaseURL, "/")+"/")
	if c.conf.UserAgent != "" {
		req.Header.Set("User-Agent", c.conf.UserAgent)
	}
	for k, v := range c.conf.ExtraHeaders {
		req.Header.Set(k, v)
	}
}

// do performs a request and reads in the whole body.
// Transport failures and non-2xx responses are returned as errors.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("HTTP code %d (%s)", resp.StatusCode, req.URL.String())
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// FetchCards runs the search for a single year/volume/part and returns the
// case cards found on the results page.
// The raw response is kept in the debug dir (and warc dir, if set) before
// parsing.
func (c *Client) FetchCards(year, volume, part string) ([]*html.Node, error) {
	form := url.Values{}
	form.Set("year", year)
	form.Set("volume", volume)
	form.Set("partno", part)
	encoded := form.Encode()

	var resp *http.Response
	var body []byte
	var err error
	for attempt := 0; attempt <= c.conf.Retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.conf.RetryDelay
			c.InfoLog.Printf("retrying %s in %s (%s)\n", encoded, delay, err)
			time.Sleep(delay)
		}
		var req *http.Request
		req, err = http.NewRequest("POST", c.SearchURL(), strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		resp, body, err = c.do(req)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	debugFile, err := c.archive.SaveBody(year, volume, part, body)
	if err != nil {
		c.ErrLog.Printf("failed to save debug copy: %s\n", err)
	} else if debugFile != "" {
		c.InfoLog.Printf("saved response to %s\n", debugFile)
	}
	_, err = c.archive.ArchiveResponse(resp, body, c.SearchURL(), encoded, time.Now())
	if err != nil {
		c.ErrLog.Printf("failed to archive response: %s\n", err)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return cardSel.MatchAll(root), nil
}
