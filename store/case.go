package store

// Case is a single judgment listing scraped from the repository.
// Link fields are empty when the card had no matching link.
type Case struct {
	ID           int    `json:"id,omitempty"`
	Year         string `json:"year"`
	VolumeNumber string `json:"volume_number"`
	PartNumber   string `json:"part_number"`
	Title        string `json:"title"`
	Citations    string `json:"citations"`
	PDFLink      string `json:"pdf_link,omitempty"`
	CaseType     string `json:"case_type"`
	Date         string `json:"date"`
	// Volume is never populated from the site and is kept apart from
	// VolumeNumber.
	Volume    string `json:"volume"`
	Judges    string `json:"judges"`
	HTMLLink  string `json:"html_link,omitempty"`
	FlipLink  string `json:"flip_link,omitempty"`
	SplitLink string `json:"split_link,omitempty"`
}

// CitationSep separates multiple citations in Case.Citations
const CitationSep = " | "

// Columns is the canonical field order, used for both the db table and
// csv exports.
var Columns = []string{
	"year",
	"volume_number",
	"part_number",
	"title",
	"citations",
	"pdf_link",
	"case_type",
	"date",
	"volume",
	"judges",
	"html_link",
	"flip_link",
	"split_link",
}

// Row returns the case fields in Columns order.
func (c *Case) Row() []string {
	return []string{
		c.Year,
		c.VolumeNumber,
		c.PartNumber,
		c.Title,
		c.Citations,
		c.PDFLink,
		c.CaseType,
		c.Date,
		c.Volume,
		c.Judges,
		c.HTMLLink,
		c.FlipLink,
		c.SplitLink,
	}
}
