package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	id "balangay/pkg/domain"
)

// HTTPGateway calls the hosted notification API: one POST endpoint per event
// kind under a common base URL. There is no retry policy; a failed send is
// reported once and dropped.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway builds a gateway for the given base URL.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type notifyRequest struct {
	ResidentID string `json:"resident_id"`
	Reason     string `json:"reason,omitempty"`
}

// Send posts the event to its endpoint and treats any non-2xx response as an
// error for the caller to log as a warning.
func (g *HTTPGateway) Send(ctx context.Context, kind EventKind, residentID id.ResidentID, payload Payload) error {
	body, err := json.Marshal(notifyRequest{
		ResidentID: residentID.String(),
		Reason:     payload.Reason,
	})
	if err != nil {
		return fmt.Errorf("marshal %s notification: %w", kind, err)
	}

	url := g.baseURL + "/notify/" + string(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s notification request: %w", kind, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send %s notification: %w", kind, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send %s notification: unexpected status %d", kind, resp.StatusCode)
	}
	return nil
}
