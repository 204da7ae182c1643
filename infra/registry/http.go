package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dongqi-wu/reisego/auth"
	"github.com/dongqi-wu/reisego/core/model"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
)

// HTTPStore fetches scenario definitions from a scenario service over REST.
// Endpoints:
//
//	GET {base}/api/v1/scenarios
//	GET {base}/api/v1/scenarios/{id}
//
// Requests carry a client-credentials bearer token when credentials are
// configured.
type HTTPStore struct {
	base   string
	client *http.Client
	creds  *auth.ClientCred
}

// NewHTTPStore returns a store for the service at base. creds may be nil for
// unauthenticated deployments.
func NewHTTPStore(base string, creds *auth.ClientCred) (*HTTPStore, error) {
	if base == "" {
		return nil, fmt.Errorf("scenario service URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("scenario service URL: %w", err)
	}
	return &HTTPStore{
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
		creds:  creds,
	}, nil
}

// Get returns the scenario tuple recorded under id.
func (s *HTTPStore) Get(ctx context.Context, id string) (model.Scenario, error) {
	var sc model.Scenario
	status, err := s.getJSON(ctx, fmt.Sprintf("%s/api/v1/scenarios/%s", s.base, url.PathEscape(id)), &sc)
	if err != nil {
		return model.Scenario{}, err
	}
	if status == http.StatusNotFound {
		return model.Scenario{}, fmt.Errorf("scenario %s: %w", id, coreregistry.ErrScenarioNotFound)
	}
	if status != http.StatusOK {
		return model.Scenario{}, fmt.Errorf("scenario service returned %d", status)
	}
	return sc, nil
}

// List returns every scenario the service knows about.
func (s *HTTPStore) List(ctx context.Context) ([]model.Scenario, error) {
	var out []model.Scenario
	status, err := s.getJSON(ctx, s.base+"/api/v1/scenarios", &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("scenario service returned %d", status)
	}
	return out, nil
}

// getJSON performs an authenticated GET and decodes the body into out unless
// the response is a 404.
func (s *HTTPStore) getJSON(ctx context.Context, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if s.creds != nil {
		if err := s.creds.SetAuthHeader(req); err != nil {
			return 0, fmt.Errorf("scenario service auth: %w", err)
		}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scenario service request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("scenario service response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
