// Package api is the HTTP client for the remote jobs REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

const (
	jobsPath        = "/jobs"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// Client talks to the jobs API. It imposes no timeout of its own; failures
// are only what the transport or the server report.
type Client struct {
	baseURL   string
	hc        *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithRateLimit throttles outbound requests. A non-positive rate disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the API rooted at baseURL (for example
// http://localhost/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		hc:        &http.Client{},
		userAgent: "jobdesk",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: API error %d", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// ErrUnexpectedShape is returned when a list response is neither a JSON
// array nor an object carrying the array under "data".
var ErrUnexpectedShape = errors.New("unexpected response shape")

// ListJobs fetches the full collection
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	body, err := c.do(ctx, http.MethodGet, jobsPath, nil)
	if err != nil {
		return nil, err
	}
	return DecodeJobList(body)
}

// CreateJob posts a draft and returns the stored record
func (c *Client) CreateJob(ctx context.Context, draft models.Draft) (models.Job, error) {
	body, err := c.do(ctx, http.MethodPost, jobsPath, draft)
	if err != nil {
		return models.Job{}, err
	}
	return decodeJob(body)
}

// UpdateJob replaces the editable fields of a job
func (c *Client) UpdateJob(ctx context.Context, id string, draft models.Draft) (models.Job, error) {
	body, err := c.do(ctx, http.MethodPut, jobPath(id), draft)
	if err != nil {
		return models.Job{}, err
	}
	return decodeJob(body)
}

// DeleteJob removes a job. The response body is ignored on success.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, jobPath(id), nil)
	return err
}

func jobPath(id string) string {
	return jobsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		log.Printf("api: %s %s request_id=%s failed: %v", method, path, requestID, err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("api: %s %s request_id=%s read body: %v", method, path, requestID, err)
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	log.Printf("api: %s %s request_id=%s status=%d", method, path, requestID, res.StatusCode)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, Path: path, Status: res.StatusCode, Body: text}
	}
	return body, nil
}

// DecodeJobList accepts either a raw JSON array of jobs or an envelope
// object carrying the array under "data".
func DecodeJobList(body []byte) ([]models.Job, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode job list: %w: empty body", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '[':
		var jobs []models.Job
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, fmt.Errorf("decode job list: %w", err)
		}
		return nonNil(jobs), nil
	case '{':
		var envelope struct {
			Data *[]models.Job `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode job list envelope: %w", err)
		}
		if envelope.Data == nil {
			return nil, fmt.Errorf("decode job list: %w: object without data", ErrUnexpectedShape)
		}
		return nonNil(*envelope.Data), nil
	}
	return nil, fmt.Errorf("decode job list: %w", ErrUnexpectedShape)
}

func decodeJob(body []byte) (models.Job, error) {
	var job models.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return models.Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

func nonNil(jobs []models.Job) []models.Job {
	if jobs == nil {
		return []models.Job{}
	}
	return jobs
}
