package arc

// helpers to keep copies of raw HTTP responses, either as plain body dumps
// for eyeballing or as noddy .warc files

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bcampbell/warc"
)

// Archiver writes response copies. Empty dirs disable the corresponding output.
type Archiver struct {
	// DebugDir gets one file per search, holding the raw body.
	DebugDir string
	// WarcDir gets a gzipped .warc per request, spread across subdirs.
	WarcDir string
}

// DebugFilename is the name used for the raw body of the search for the
// given year, volume and part.
func DebugFilename(year, volume, part string) string {
	return fmt.Sprintf("debug_%s_%s_%s.html", year, volume, part)
}

// SaveBody writes body verbatim into DebugDir, returning the path written.
// Any existing file for the same search is overwritten.
func (a *Archiver) SaveBody(year, volume, part string, body []byte) (string, error) {
	if a.DebugDir == "" {
		return "", nil
	}
	err := os.MkdirAll(a.DebugDir, 0777) // let umask cull the perms down...
	if err != nil {
		return "", err
	}
	filename := filepath.Join(a.DebugDir, DebugFilename(year, volume, part))
	err = ioutil.WriteFile(filename, body, 0666)
	if err != nil {
		return "", err
	}
	return filename, nil
}

// eg "abcdefg.foo" returns "a/ab/abc"
func spreadPath(name string) string {
	numChunks := 3 // how many subdirs to use
	chunkSize := 1 // num chars per subdir

	if len(name) < numChunks*chunkSize {
		panic("name too short")
	}

	parts := make([]string, numChunks)
	for chunk := 0; chunk < numChunks; chunk++ {
		parts[chunk] = name[0 : (chunk+1)*chunkSize]
	}
	return filepath.Join(parts...)
}

// warcPath returns where the archive for srcURL lives, eg
// .../digiscr.sci.gov.in/1/12/123/12345678.warc.gz
// POSTs to the same url share a file, so the caller passes a key
// (eg the form data) to tell them apart.
func (a *Archiver) warcPath(srcURL string, key string) (string, error) {
	u, err := url.Parse(srcURL)
	if err != nil {
		return "", err
	}
	hasher := md5.New()
	hasher.Write([]byte(srcURL))
	hasher.Write([]byte(key))
	filename := hex.EncodeToString(hasher.Sum(nil)) + ".warc.gz"
	return filepath.Join(a.WarcDir, u.Host, spreadPath(filename), filename), nil
}

// ArchiveResponse writes resp out as a .warc.gz file under WarcDir.
// resp.Body has usually been consumed already, so the body is passed in
// separately.
func (a *Archiver) ArchiveResponse(resp *http.Response, body []byte, srcURL string, key string, timeStamp time.Time) (string, error) {
	if a.WarcDir == "" {
		return "", nil
	}
	if resp.Request == nil {
		return "", fmt.Errorf("can't archive %s: response has no request", srcURL)
	}
	full, err := a.warcPath(srcURL, key)
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(filepath.Dir(full), 0777)
	if err != nil {
		return "", err
	}

	outfile, err := os.Create(full)
	if err != nil {
		return "", err
	}

	gzw := gzip.NewWriter(outfile)

	// shallow copy, so we don't mess with the caller's response
	cpy := *resp
	cpy.Body = ioutil.NopCloser(bytes.NewReader(body))
	cpy.ContentLength = int64(len(body))
	err = warc.Write(gzw, &cpy, srcURL, timeStamp)
	// gzip only flushes on close, so those errors count too
	if closeErr := gzw.Close(); err == nil {
		err = closeErr
	}
	if closeErr := outfile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(full)
		return "", err
	}
	return full, nil
}
