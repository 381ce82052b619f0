// Package pushgw provides a client for an FCM-style push notification gateway
package pushgw

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
)

const (
	baseURLDefault   = "https://fcm.googleapis.com"
	sendPath         = "/fcm/send"
	defaultTimeout   = 10 * time.Second
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	ServerKey string
	Timeout   time.Duration

	MaxRetries int
	RetryBase  time.Duration
}

// Notification is the visible push payload
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendRequest struct {
	To           string         `json:"to"`
	Notification Notification   `json:"notification"`
	Data         map[string]any `json:"data,omitempty"`
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// ErrTokenGone marks a token the gateway says is dead; callers should drop it
var ErrTokenGone = perr.New(perr.ErrorCodeNotFound, "push token not registered")

// Client is a minimal push gateway client with retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("pushgw"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Send delivers a notification to a single device token
func (c *Client) Send(ctx context.Context, token string, n Notification, data map[string]any) error {
	body, err := json.Marshal(sendRequest{To: token, Notification: n, Data: data})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "pushgw marshal request failed")
	}

	url := c.opts.BaseURL + sendPath
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "pushgw new request failed")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "key="+c.opts.ServerKey)

		resp, err := c.http.Do(req)
		if err != nil {
			if !c.shouldRetry(attempts) {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "pushgw do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("pushgw transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var out sendResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				_ = resp.Body.Close()
				return perr.Wrapf(err, perr.ErrorCodeUnknown, "pushgw decode response failed")
			}
			_ = resp.Body.Close()
			if out.Failure > 0 && len(out.Results) > 0 {
				switch out.Results[0].Error {
				case "NotRegistered", "InvalidRegistration":
					return ErrTokenGone
				default:
					return perr.Newf(perr.ErrorCodeUnknown, "pushgw delivery failed: %s", out.Results[0].Error)
				}
			}
			return nil
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return perr.Newf(perr.ErrorCodeUnavailable, "pushgw transient status %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("status", resp.StatusCode).Msg("pushgw transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return perr.Newf(perr.ErrorCodeUnknown, "pushgw unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4096))
	return rc.Close()
}
