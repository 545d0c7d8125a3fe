// Package gateway is the HTTP/JSON client for the remote analysis and
// allocation services. It knows only the wire contract; every failure mode
// (transport error, non-2xx status, malformed body) surfaces as a plain
// error for the caller's state machine to classify.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/tracing"
)

// Config holds gateway configuration.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the remote endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a gateway client. A nil HTTP client falls back to a default
// with a sane timeout.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("gateway: base URL is required")
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: config.BaseURL, client: client}, nil
}

// TaskAnalysisRequest is the analyze-task request body. The project
// description gives the analysis service shared context for every task.
type TaskAnalysisRequest struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	StartDate          string `json:"start_date,omitempty"`
	EndDate            string `json:"end_date,omitempty"`
	ProjectDescription string `json:"project_description"`
}

// ExecutorAnalysisRequest is the analyze-executor request body.
type ExecutorAnalysisRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Resume string `json:"resume"`
}

// analysisResponse is the canonical analyze response envelope. Both analyze
// endpoints wrap the scores in an `assessment` object; a body without it is
// malformed.
type analysisResponse struct {
	Assessment *model.Assessment `json:"assessment"`
}

// allocationResponse is the allocate response body.
type allocationResponse struct {
	Allocation model.Allocation `json:"allocation"`
}

// AnalyzeTask submits a task for skill analysis.
func (c *Client) AnalyzeTask(ctx context.Context, request TaskAnalysisRequest) (*model.Assessment, error) {
	var response analysisResponse
	if err := c.post(ctx, "/analyze/task", request, &response); err != nil {
		return nil, err
	}
	if response.Assessment == nil {
		return nil, fmt.Errorf("gateway: analyze task %s: response carries no assessment", request.ID)
	}
	return response.Assessment, nil
}

// AnalyzeExecutor submits an executor resume for skill analysis.
func (c *Client) AnalyzeExecutor(ctx context.Context, request ExecutorAnalysisRequest) (*model.Assessment, error) {
	var response analysisResponse
	if err := c.post(ctx, "/analyze/executor", request, &response); err != nil {
		return nil, err
	}
	if response.Assessment == nil {
		return nil, fmt.Errorf("gateway: analyze executor %s: response carries no assessment", request.ID)
	}
	return response.Assessment, nil
}

// Allocate submits the normalized allocation request and returns the task to
// executor mapping.
func (c *Client) Allocate(ctx context.Context, request *model.AllocationRequest) (model.Allocation, error) {
	var response allocationResponse
	if err := c.post(ctx, "/match/allocate", request, &response); err != nil {
		return nil, err
	}
	if response.Allocation == nil {
		return nil, fmt.Errorf("gateway: allocate: response carries no allocation")
	}
	return response.Allocation, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "gateway"+path)
	span.WithAttributes(map[string]string{"http.method": http.MethodPost, "http.route": path})
	defer func() { tracing.EndSpan(span, err) }()

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gateway: marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gateway: create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: send %s request: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gateway: read %s response: %w", path, err)
	}
	span.SetStatusFromHTTPCode(resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway: %s failed (status %d): %s", path, resp.StatusCode, string(body))
	}
	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("gateway: unmarshal %s response: %w", path, err)
	}
	return nil
}
