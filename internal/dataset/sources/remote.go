package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

// DefaultURL is the published global land-surface temperature document.
const DefaultURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// RemoteSource fetches the temperature document over HTTP.
type RemoteSource struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewRemoteSource returns a source for url. An empty url uses DefaultURL.
func NewRemoteSource(client *http.Client, url string) *RemoteSource {
	if url == "" {
		url = DefaultURL
	}
	return &RemoteSource{
		name: "remote",
		url:  url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff,
		},
		circuit: newCircuitBreaker("remote-dataset"),
	}
}

// WithBackoff overrides the retry policy.
func (s *RemoteSource) WithBackoff(b BackoffConfig) *RemoteSource {
	s.httpCfg.Backoff = b
	return s
}

func (s *RemoteSource) Name() string {
	return s.name
}

// URL returns the document location.
func (s *RemoteSource) URL() string {
	return s.url
}

func (s *RemoteSource) Fetch(ctx context.Context) (heatmap.Dataset, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return heatmap.Dataset{}, err
	}
	defer resp.Body.Close()

	ds, err := Decode(resp.Body)
	if err != nil {
		return heatmap.Dataset{}, fmt.Errorf("%s: %w", s.url, err)
	}
	return ds, nil
}
