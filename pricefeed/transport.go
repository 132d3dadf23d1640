package pricefeed

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// DailyTransport is an http.RoundTripper that caches successful responses on
// disk. Entries are keyed by day, so the cache expires every day.
type DailyTransport struct {
	Base http.RoundTripper // http.DefaultTransport if nil
	Dir  string            // os.TempDir() if empty

	today func() string
}

// NewDailyClient returns a client with a daily disk cache in dir.
func NewDailyClient(dir string) *http.Client {
	return &http.Client{
		Transport: &DailyTransport{Dir: dir},
		Timeout:   10 * time.Second,
	}
}

func (c *DailyTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", c.day(), req.Method, req.URL.String())
	key = fmt.Sprintf("coinsphere-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err = base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

func (c *DailyTransport) day() string {
	if c.today != nil {
		return c.today()
	}
	return time.Now().Format(time.DateOnly)
}

func (c *DailyTransport) path(key string) string {
	dir := c.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *DailyTransport) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk. DumpResponse leaves resp.Body readable.
func (c *DailyTransport) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), content, 0o644)
}
