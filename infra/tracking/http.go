package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dongqi-wu/reisego/auth"
)

// HTTPTracker reports run state to a scenario service over REST:
//
//	PATCH {base}/api/v1/scenarios/{id}/tracking
//	GET   {base}/api/v1/scenarios/{id}/tracking
//
// Patches carry only the field being updated so concurrent status and
// runtime writers do not clobber each other.
type HTTPTracker struct {
	base   string
	client *http.Client
	creds  *auth.ClientCred
}

type trackingDoc struct {
	Status  string `json:"status,omitempty"`
	Runtime string `json:"runtime,omitempty"`
}

// NewHTTPTracker returns a tracker for the service at base. creds may be nil
// for unauthenticated deployments.
func NewHTTPTracker(base string, creds *auth.ClientCred) (*HTTPTracker, error) {
	if base == "" {
		return nil, fmt.Errorf("tracking service URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("tracking service URL: %w", err)
	}
	return &HTTPTracker{
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
		creds:  creds,
	}, nil
}

func (t *HTTPTracker) UpdateStatus(ctx context.Context, scenarioID, status string) error {
	return t.patch(ctx, scenarioID, trackingDoc{Status: status})
}

func (t *HTTPTracker) UpdateRuntime(ctx context.Context, scenarioID, runtime string) error {
	return t.patch(ctx, scenarioID, trackingDoc{Runtime: runtime})
}

func (t *HTTPTracker) Status(ctx context.Context, scenarioID string) (string, error) {
	doc, err := t.get(ctx, scenarioID)
	return doc.Status, err
}

func (t *HTTPTracker) Runtime(ctx context.Context, scenarioID string) (string, error) {
	doc, err := t.get(ctx, scenarioID)
	return doc.Runtime, err
}

func (t *HTTPTracker) Close() error { return nil }

func (t *HTTPTracker) endpoint(scenarioID string) string {
	return fmt.Sprintf("%s/api/v1/scenarios/%s/tracking", t.base, url.PathEscape(scenarioID))
}

func (t *HTTPTracker) patch(ctx context.Context, scenarioID string, doc trackingDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, t.endpoint(scenarioID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("tracking service returned %d", resp.StatusCode)
	}
	return nil
}

func (t *HTTPTracker) get(ctx context.Context, scenarioID string) (trackingDoc, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint(scenarioID), nil)
	if err != nil {
		return trackingDoc{}, err
	}
	resp, err := t.do(req)
	if err != nil {
		return trackingDoc{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return trackingDoc{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return trackingDoc{}, fmt.Errorf("tracking service returned %d", resp.StatusCode)
	}
	var doc trackingDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return trackingDoc{}, fmt.Errorf("tracking service response: %w", err)
	}
	return doc, nil
}

func (t *HTTPTracker) do(req *http.Request) (*http.Response, error) {
	if t.creds != nil {
		if err := t.creds.SetAuthHeader(req); err != nil {
			return nil, fmt.Errorf("tracking service auth: %w", err)
		}
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking service request: %w", err)
	}
	return resp, nil
}
