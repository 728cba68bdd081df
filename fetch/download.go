package fetch

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"unicode"

	"github.com/flytam/filenamify"
)

// maxNameLen is the longest filename (in runes, excluding extension) we'll
// derive from a title
const maxNameLen = 100

// SafeFilename turns a case title into a filename (without extension).
// Anything other than letters and digits becomes an underscore.
func SafeFilename(title string) string {
	runes := []rune{}
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			runes = append(runes, r)
		} else {
			runes = append(runes, '_')
		}
	}
	if len(runes) > maxNameLen {
		runes = runes[:maxNameLen]
	}
	safe := string(runes)

	// only reserved names (CON, NUL etc) can still be a problem by now.
	// "-" never appears in safe, so filenamify won't collapse or strip anything.
	out, err := filenamify.Filenamify(safe, filenamify.Options{Replacement: "-", MaxLength: len(safe) + 1})
	if err != nil || out == "" {
		return safe
	}
	return out
}

// PDFPath returns where Download would put the judgment for title.
func (c *Client) PDFPath(title string) string {
	return filepath.Join(c.conf.PDFDir, SafeFilename(title)+".pdf")
}

// Download fetches a judgment pdf into the pdf dir, returning the path written.
// An empty pdfURL is a no-op. On failure no file is left behind.
func (c *Client) Download(pdfURL string, title string) (string, error) {
	if pdfURL == "" {
		return "", nil
	}
	if c.conf.PDFDir != "" {
		err := os.MkdirAll(c.conf.PDFDir, 0777)
		if err != nil {
			return "", err
		}
	}
	filename := c.PDFPath(title)

	req, err := http.NewRequest("GET", pdfURL, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP code %d (%s)", resp.StatusCode, pdfURL)
	}

	// write to a temp file and only move it into place once complete
	tmp, err := ioutil.TempFile(filepath.Dir(filename), ".partial-*.pdf")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filename)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return filename, nil
}
