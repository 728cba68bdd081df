package server

// read-only json api over a case store

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bcampbell/digiscr/store"
	"github.com/gorilla/handlers"
)

// MaxCount caps the number of cases returned by a single request
const MaxCount = 20000

type Logger interface {
	Printf(format string, v ...interface{})
}

type nullLogger struct{}

func (l nullLogger) Printf(format string, v ...interface{}) {
}

func EmitError(w http.ResponseWriter, statusCode int) {
	txt := fmt.Sprintf("%d - %s", statusCode, http.StatusText(statusCode))
	http.Error(w, txt, statusCode)
}

type CaseServer struct {
	ErrLog  Logger
	InfoLog Logger
	Prefix  string
	// AccessLog turns on apache-style request logging to stderr
	AccessLog bool

	db store.Store
}

func NewServer(db store.Store, prefix string) *CaseServer {
	return &CaseServer{
		db:      db,
		Prefix:  prefix,
		ErrLog:  nullLogger{},
		InfoLog: nullLogger{},
	}
}

// Handler returns the api routes, ready to serve.
func (srv *CaseServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(srv.Prefix+"/api/cases", handlers.CompressHandler(
		http.HandlerFunc(srv.casesHandler)))
	mux.HandleFunc(srv.Prefix+"/api/count", srv.countHandler)

	if srv.AccessLog {
		return handlers.LoggingHandler(os.Stderr, mux)
	}
	return mux
}

func (srv *CaseServer) Run(port int) error {
	srv.InfoLog.Printf("Started at localhost:%d%s/\n", port, srv.Prefix)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), srv.Handler())
}

type CasesResult struct {
	Cases []*store.Case `json:"cases"`
	Next  struct {
		SinceID int `json:"since_id,omitempty"`
	} `json:"next"`
}

type CountResult struct {
	Count int `json:"count"`
}

// implement api/cases
func (srv *CaseServer) casesHandler(w http.ResponseWriter, r *http.Request) {
	filt, err := getFilter(r)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	cases, err := srv.db.Fetch(filt)
	if err != nil {
		srv.ErrLog.Printf("/api/cases DB error: %s\n", err)
		EmitError(w, 500)
		return
	}

	out := CasesResult{Cases: cases}
	if out.Cases == nil {
		out.Cases = []*store.Case{}
	}
	// a full page suggests there are more to fetch
	if filt.Count > 0 && len(cases) == filt.Count {
		out.Next.SinceID = cases[len(cases)-1].ID
	}

	n, err := writeJSON(w, &out)
	if err != nil {
		srv.ErrLog.Printf("/api/cases %s\n", err)
		return
	}
	srv.InfoLog.Printf("%s /api/cases OK %d cases %d bytes %s\n", r.RemoteAddr, len(cases), n, filt.Describe())
}

// implement api/count
func (srv *CaseServer) countHandler(w http.ResponseWriter, r *http.Request) {
	filt, err := getFilter(r)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	// count is the whole match, not a page of it
	filt.Count = 0

	total, err := srv.db.FetchCount(filt)
	if err != nil {
		srv.ErrLog.Printf("/api/count DB error: %s\n", err)
		EmitError(w, 500)
		return
	}

	_, err = writeJSON(w, &CountResult{Count: total})
	if err != nil {
		srv.ErrLog.Printf("/api/count %s\n", err)
		return
	}
	srv.InfoLog.Printf("%s /api/count OK %d cases %s\n", r.RemoteAddr, total, filt.Describe())
}

// helper fn
func writeJSON(w http.ResponseWriter, v interface{}) (int, error) {
	outBuf, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("json encoding error: %s", err)
	}
	w.Header().Set("Content-Type", "application/json")
	n, err := w.Write(outBuf)
	if err != nil {
		return n, fmt.Errorf("write error: %s", err)
	}
	return n, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad '%s' param", name)
	}
	return n, nil
}

func getFilter(r *http.Request) (*store.Filter, error) {
	filt := &store.Filter{}

	// year/volume/part are matched as text, but must look like numbers
	for _, p := range []struct {
		name string
		dest *string
	}{
		{"year", &filt.Year},
		{"volume", &filt.VolumeNumber},
		{"part", &filt.PartNumber},
	} {
		if _, err := intParam(r, p.name); err != nil {
			return nil, err
		}
		*p.dest = r.FormValue(p.name)
	}

	sinceID, err := intParam(r, "since_id")
	if err != nil {
		return nil, err
	}
	filt.SinceID = sinceID

	cnt, err := intParam(r, "count")
	if err != nil {
		return nil, err
	}
	if cnt == 0 {
		// default to max
		cnt = MaxCount
	}
	if cnt > MaxCount {
		return nil, fmt.Errorf("'count' too high (max %d)", MaxCount)
	}
	filt.Count = cnt

	return filt, nil
}
