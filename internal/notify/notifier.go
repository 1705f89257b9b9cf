// Package notify delivers composed notifications to the NZBClient push API
// as a single form-encoded POST.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/config"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/message"
)

// AppName is sent in the app field so the receiver can tell sources apart.
const AppName = "nzbget"

// Client posts notifications for one account.
type Client struct {
	endpoint string
	token    string
	user     string
	client   *http.Client
}

// New creates a Client. A zero timeout falls back to 10 seconds.
func New(endpoint, appToken, userKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		token:    appToken,
		user:     userKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// FromConfig creates a Client from the account and delivery sections.
func FromConfig(cfg config.Config) *Client {
	return New(cfg.Delivery.Endpoint, cfg.Account.AppToken, cfg.Account.UserKey, cfg.Delivery.Timeout())
}

// Form encodes msg as the fields the push API expects.
func (c *Client) Form(msg message.Outbound) url.Values {
	v := url.Values{}
	v.Set("token", c.token)
	v.Set("user", c.user)
	v.Set("url", msg.Link)
	v.Set("priority", strconv.Itoa(int(msg.Priority)))
	v.Set("isEncrypted", pyBool(msg.IsEncrypted))
	if msg.IsEncrypted {
		v.Set("encryptionType", msg.EncryptionType)
	}
	v.Set("title", msg.Title)
	v.Set("message", msg.Body)
	v.Set("app", AppName)
	v.Set("nzbID", msg.CorrelationID)
	return v
}

// Send posts msg and returns the HTTP status code. Any response counts as
// delivered; only transport failures are errors. There are no retries.
func (c *Client) Send(ctx context.Context, msg message.Outbound) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(c.Form(msg).Encode()))
	if err != nil {
		return 0, fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("notify: post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// pyBool renders a flag the way the receiver was written to parse it.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
