// README: HTTP client for one mock provider price feed.
package rides

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OptionSource yields the currently offered options for a route. Pricing is
// provider-specific and randomized per call; callers must not assume repeated
// calls with identical arguments return the same prices.
type OptionSource interface {
	FetchRides(ctx context.Context, from, to string) ([]Option, error)
}

// ProviderClient fetches ride options from one provider feed
// (GET {base}/api/{provider}/rides?from=&to=).
type ProviderClient struct {
	provider string
	baseURL  string
	httpc    *http.Client
}

func NewProviderClient(provider, baseURL string) *ProviderClient {
	return &ProviderClient{
		provider: provider,
		baseURL:  baseURL,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

type feedRide struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
	ETA   int     `json:"eta"`
}

type feedResponse struct {
	Service string     `json:"service"`
	Rides   []feedRide `json:"rides"`
}

func (c *ProviderClient) FetchRides(ctx context.Context, from, to string) ([]Option, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	endpoint := fmt.Sprintf("%s/api/%s/rides?%s", c.baseURL, c.provider, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.provider, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", c.provider, resp.StatusCode)
	}

	var fr feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", c.provider, err)
	}

	options := make([]Option, 0, len(fr.Rides))
	for _, r := range fr.Rides {
		options = append(options, Option{
			Service: fr.Service,
			Type:    r.Type,
			Price:   r.Price,
			ETA:     r.ETA,
		})
	}
	return options, nil
}
