package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DefaultTimeout = 10 * time.Second

	// Tells the tunnel in front of some deployments to skip its warning page.
	BypassTunnelHeader = "bypass-tunnel-reminder"
)

// ErrRequestFailed covers every failed exchange with the collection:
// transport errors, non-2xx responses and bodies that do not decode.
var ErrRequestFailed = errors.New("remote request failed")

var clientRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_client_requests_total",
	Help: "Requests issued to remote collections, by operation and outcome",
}, []string{"op", "outcome"})

// RequestError describes one failed operation against a collection.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrRequestFailed, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrRequestFailed, e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// Client talks to one collection endpoint: GET/POST on the base URL and
// PUT/DELETE on base/{id}. R is the record type the server returns, F the
// form type sent on create and update.
type Client[R any, F any] struct {
	base string
	http *http.Client
}

// New returns a client for the collection at base. A nil httpClient gets
// one with DefaultTimeout.
func New[R any, F any](base string, httpClient *http.Client) *Client[R, F] {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client[R, F]{base: strings.TrimRight(base, "/"), http: httpClient}
}

// Base returns the collection URL.
func (c *Client[R, F]) Base() string { return c.base }

func (c *Client[R, F]) List(ctx context.Context) ([]R, error) {
	var out []R
	if err := c.do(ctx, "list", http.MethodGet, c.base, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []R{}
	}
	return out, nil
}

func (c *Client[R, F]) Create(ctx context.Context, form F) (R, error) {
	var out R
	err := c.do(ctx, "create", http.MethodPost, c.base, form, &out)
	return out, err
}

func (c *Client[R, F]) Update(ctx context.Context, id int64, form F) (R, error) {
	var out R
	err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), form, &out)
	return out, err
}

func (c *Client[R, F]) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client[R, F]) itemURL(id int64) string {
	return c.base + "/" + strconv.FormatInt(id, 10)
}

// do runs one exchange. A non-nil payload is sent as JSON; a non-nil out
// receives the decoded response body.
func (c *Client[R, F]) do(ctx context.Context, op, method, url string, payload any, out any) error {
	err := c.exchange(ctx, op, method, url, payload, out)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	clientRequests.WithLabelValues(op, outcome).Inc()
	return err
}

func (c *Client[R, F]) exchange(ctx context.Context, op, method, url string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	} else {
		req.Header.Set(BypassTunnelHeader, "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: errors.New(errorMessage(resp.Body))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage pulls the server's {"error": ...} message, falling back to
// the raw body.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "unexpected status"
}
