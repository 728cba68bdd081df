package extract

// Pulls case details out of the "card" html fragments returned by the
// digiscr judgment search.

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/purell"
	"github.com/andybalholm/cascadia"
	"github.com/bcampbell/digiscr/store"
	"github.com/bcampbell/htmlutil"
	"golang.org/x/net/html"
)

// Extractor turns a single card node into a Case.
// Year, volume and part are not known to the card and are left for the
// caller to fill in.
type Extractor interface {
	Extract(card *html.Node) (*store.Case, error)
}

var ErrNoTitle = errors.New("no title found")

var (
	titleSel    = cascadia.MustCompile(".cite-data a")
	citationSel = cascadia.MustCompile(".cititaion span") // sic
	civilSel    = cascadia.MustCompile(".civil")
	paraSel     = cascadia.MustCompile("p")
	judgesSel   = cascadia.MustCompile(".entryjudgment")
	linkSel     = cascadia.MustCompile(".split a[href]")
)

// CardExtractor knows the markup used by digiscr.sci.gov.in
type CardExtractor struct {
	// BaseURL is the origin prepended to (relative) document links
	BaseURL string
}

func NewCardExtractor(baseURL string) *CardExtractor {
	return &CardExtractor{BaseURL: baseURL}
}

func (ext *CardExtractor) Extract(card *html.Node) (*store.Case, error) {
	if card == nil {
		return nil, errors.New("nil card")
	}

	titleNode := titleSel.MatchFirst(card)
	if titleNode == nil {
		return nil, ErrNoTitle
	}
	c := &store.Case{
		Title: TextContent(titleNode),
	}

	citations := []string{}
	for _, span := range citationSel.MatchAll(card) {
		citations = append(citations, TextContent(span))
	}
	c.Citations = strings.Join(citations, store.CitationSep)

	// first para is case type, second is the date
	if civil := civilSel.MatchFirst(card); civil != nil {
		// descendants only; MatchAll would include civil itself
		paras := []*html.Node{}
		for _, p := range paraSel.MatchAll(civil) {
			if p != civil {
				paras = append(paras, p)
			}
		}
		if len(paras) > 0 {
			c.CaseType = TextContent(paras[0])
		}
		if len(paras) > 1 {
			c.Date = TextContent(paras[1])
		}
	}

	if judges := judgesSel.MatchFirst(card); judges != nil {
		c.Judges = TextContent(judges)
	}

	for _, a := range linkSel.MatchAll(card) {
		href := GetAttr(a, "href")
		lower := strings.ToLower(href)
		switch {
		case strings.Contains(lower, "pdf"):
			c.PDFLink = ext.absURL(href)
		case strings.Contains(lower, "html"):
			c.HTMLLink = ext.absURL(href)
		case strings.Contains(lower, "flip"):
			c.FlipLink = ext.absURL(href)
		case strings.Contains(lower, "split"):
			c.SplitLink = ext.absURL(href)
		}
	}

	return c, nil
}

// absURL glues href onto the base origin with exactly one slash between them.
// The site hands out both "doc/x" and "/doc/x" forms.
func (ext *CardExtractor) absURL(href string) string {
	u := strings.TrimRight(ext.BaseURL, "/") + "/" + strings.TrimLeft(href, "/")
	normalised, err := purell.NormalizeURLString(u, purell.FlagsSafe)
	if err != nil {
		return u
	}
	return normalised
}

// GetAttr retrieved the value of an attribute on a node.
// Returns empty string if attribute doesn't exist.
func GetAttr(n *html.Node, attr string) string {
	for _, a := range n.Attr {
		if a.Key == attr {
			return a.Val
		}
	}
	return ""
}

var multispacePat = regexp.MustCompile(`[\s]+`)

// TextContent returns the text of a node with whitespace runs collapsed
// to single spaces and the ends trimmed.
func TextContent(n *html.Node) string {
	s := htmlutil.TextContent(n)
	return strings.TrimSpace(multispacePat.ReplaceAllLiteralString(s, " "))
}
