// Package judge orchestrates the external sandboxed execution backend: it
// rewrites raw user source into a runnable program, dispatches it with the
// challenge's combined stdin, and judges the returned output per test case.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Judge status codes. 1 and 2 are non-terminal; anything >= 3 means the run
// finished, with 3 being the judge's "Accepted".
const (
	StatusInQueue    = 1
	StatusProcessing = 2
	StatusAccepted   = 3
)

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the raw judge response. Null fields unmarshal to zero values.
type Result struct {
	Token         string `json:"token"`
	Status        Status `json:"status"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Time          string `json:"time"`   // decimal seconds, e.g. "0.002"
	Memory        int    `json:"memory"` // kilobytes
}

// Terminal reports whether the run has finished (successfully or not), as
// opposed to still being queued or processing.
func (r *Result) Terminal() bool {
	return r.Status.ID >= StatusAccepted
}

// Executor runs a program against combined stdin inside the external judge
// and returns a terminal result where possible.
type Executor interface {
	Execute(ctx context.Context, source string, languageID int, stdin string) (*Result, error)
}

// Poll states for the asynchronous delivery mode.
type pollState int

const (
	stateDispatched pollState = iota
	statePolling
	stateTerminal
	stateExhausted
)

type Options struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	PollAttempts   int
	PollInterval   time.Duration
	CPUTimeLimitS  float64
	MemoryLimitKB  int
}

// Client talks to a Judge0-compatible execution backend. It is stateless
// between invocations; per-call state lives on the request path only.
type Client struct {
	baseURL       string
	apiKey        string
	hosted        bool
	http          *http.Client
	pollAttempts  int
	pollInterval  time.Duration
	cpuTimeLimitS float64
	memoryLimitKB int
}

func NewClient(opts Options) *Client {
	if opts.PollAttempts <= 0 {
		opts.PollAttempts = 10
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiKey:        opts.APIKey,
		hosted:        strings.Contains(opts.BaseURL, "rapidapi.com"),
		http:          &http.Client{Timeout: opts.RequestTimeout},
		pollAttempts:  opts.PollAttempts,
		pollInterval:  opts.PollInterval,
		cpuTimeLimitS: opts.CPUTimeLimitS,
		memoryLimitKB: opts.MemoryLimitKB,
	}
}

type submissionRequest struct {
	SourceCode   string  `json:"source_code"`
	LanguageID   int     `json:"language_id"`
	Stdin        string  `json:"stdin,omitempty"`
	CPUTimeLimit float64 `json:"cpu_time_limit,omitempty"`
	MemoryLimit  int     `json:"memory_limit,omitempty"`
}

// Execute submits the program requesting synchronous completion. If the judge
// answers with only a token (or a non-terminal status), it falls back to
// bounded polling; after the poll budget is spent the most recent fetch is
// returned even when still non-terminal, so callers must treat a non-terminal
// status as inconclusive rather than accepted.
func (c *Client) Execute(ctx context.Context, source string, languageID int, stdin string) (*Result, error) {
	result, err := c.submit(ctx, source, languageID, stdin)
	if err != nil {
		return nil, err
	}

	// Synchronous delivery: the response already carries a terminal status.
	// A response without a token cannot be polled, so it is final either way.
	if result.Terminal() || result.Token == "" {
		return result, nil
	}
	return c.awaitResult(ctx, result.Token)
}

func (c *Client) submit(ctx context.Context, source string, languageID int, stdin string) (*Result, error) {
	body, err := json.Marshal(submissionRequest{
		SourceCode:   source,
		LanguageID:   languageID,
		Stdin:        stdin,
		CPUTimeLimit: c.cpuTimeLimitS,
		MemoryLimit:  c.memoryLimitKB,
	})
	if err != nil {
		return nil, fmt.Errorf("judge: marshal submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("judge: build submission request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req)
}

// awaitResult drives the poll state machine:
// dispatched -> polling -> terminal | exhausted.
func (c *Client) awaitResult(ctx context.Context, token string) (*Result, error) {
	var last *Result
	attempts := 0

	for state := stateDispatched; ; {
		switch state {
		case stateDispatched:
			state = statePolling

		case statePolling:
			result, err := c.fetch(ctx, token)
			if err != nil {
				return nil, err
			}
			last = result
			attempts++
			switch {
			case result.Terminal():
				state = stateTerminal
			case attempts >= c.pollAttempts:
				state = stateExhausted
			default:
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(c.pollInterval):
				}
			}

		case stateTerminal:
			return last, nil

		case stateExhausted:
			// Poll budget spent: one final fetch, returned as-is even when
			// still non-terminal. Best effort, never an infinite block.
			result, err := c.fetch(ctx, token)
			if err != nil {
				return last, nil
			}
			return result, nil
		}
	}
}

func (c *Client) fetch(ctx context.Context, token string) (*Result, error) {
	url := c.baseURL + "/submissions/" + token + "?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("judge: build status request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("judge: backend returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("judge: decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.hosted && c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", "judge0-ce.p.rapidapi.com")
	}
}
