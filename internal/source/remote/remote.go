// Package remote fetches JSON recordings over HTTP from a recording
// server, so a session can replay a match that was never downloaded.
package remote

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matchview/replay/internal/source/jsonfile"
	"github.com/matchview/replay/pkg/core"
)

// Loader downloads one recording per Load call.
type Loader struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// New creates a loader for the given recording URL. The API key is sent
// as an X-API-Key header when non-empty.
func New(url, apiKey string) *Loader {
	return &Loader{
		url:        strings.TrimSpace(url),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches and decodes the recording. URLs ending in .gz are
// decompressed before decoding.
func (l *Loader) Load() (core.Timeline, error) {
	req, err := http.NewRequest(http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building recording request: %w", err)
	}
	if l.apiKey != "" {
		req.Header.Set("X-API-Key", l.apiKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recording server returned status %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if strings.HasSuffix(l.url, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip recording: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	timeline, err := jsonfile.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding recording from %s: %w", l.url, err)
	}
	return timeline, nil
}
