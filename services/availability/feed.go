package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"slotwise/models"
)

// BusyFeed is the external calendar collaborator. Implementations own all
// transport detail; the engine only sees a payload or an error, and treats
// every error the same way (one failed attempt).
type BusyFeed interface {
	FetchBusy(ctx context.Context, identity string) (models.BusyPayload, error)
}

// HTTPBusyFeed fetches busy time from a remote calendar endpoint:
// GET {base}/busy?identity=... returning {"busy":[{"start","end"}]}.
type HTTPBusyFeed struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPBusyFeed constructs a feed client with a bounded request timeout.
func NewHTTPBusyFeed(baseURL string) *HTTPBusyFeed {
	return &HTTPBusyFeed{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPBusyFeed) FetchBusy(ctx context.Context, identity string) (models.BusyPayload, error) {
	endpoint := fmt.Sprintf("%s/busy?identity=%s", f.BaseURL, url.QueryEscape(identity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.BusyPayload{}, fmt.Errorf("failed to build busy feed request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return models.BusyPayload{}, fmt.Errorf("busy feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.BusyPayload{}, fmt.Errorf("busy feed returned status %d", resp.StatusCode)
	}

	var payload models.BusyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.BusyPayload{}, fmt.Errorf("failed to decode busy feed response: %w", err)
	}
	return payload, nil
}
