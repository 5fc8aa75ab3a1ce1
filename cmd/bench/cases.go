// README: Benchmark test cases; HTTP checks for the assistant API and mock feeds, plus throughput probes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	feeds := r.cfg.FeedsURL
	bookBody := map[string]any{
		"command":      "book ride to office",
		"user_context": map[string]any{"selected_date": 12},
	}
	return []TestCase{
		httpCaseMethod("Env: mock feeds reachable", http.MethodGet, feeds+"/api/health", nil, []int{200}),
		httpCaseMethod("Env: uber feed", http.MethodGet, feeds+"/api/uber/rides?from=Home&to=Office", nil, []int{200}),
		httpCaseMethod("Env: lyft feed", http.MethodGet, feeds+"/api/lyft/rides?from=Home&to=Office", nil, []int{200}),

		httpCaseMethod("API: health", http.MethodGet, base+"/api/health", nil, []int{200}),
		httpCaseMethod("API: status", http.MethodGet, base+"/api/status", nil, []int{200}),
		httpCaseMethod("API: metrics", http.MethodGet, base+"/metrics", nil, []int{200}),

		{
			Name: "Command: book ride (success body)",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.commandCase(ctx, base, "book ride to office", true, "book_ride")
			},
		},
		{
			Name: "Command: list rides (empty context)",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.commandCase(ctx, base, "show my rides", true, "list_rides")
			},
		},
		{
			Name: "Command: unknown stays 200 with failure body",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.commandCase(ctx, base, "sing me a song", false, "none")
			},
		},

		httpCase("Command: missing command -> 400", base+"/api/process-command", map[string]any{}, []int{400}),
		httpCase("Schedule: recurring weekdays", base+"/api/schedule-recurring", map[string]any{
			"description": "book rides monday to friday at 8am to office",
		}, []int{200}),
		httpCase("Schedule: missing description -> 400", base+"/api/schedule-recurring", map[string]any{}, []int{400}),

		{
			Name: "Concurrency: parallel commands",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentCommands(ctx, r, base+"/api/process-command", bookBody)
			},
		},
		{
			Name: "Perf: process-command throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/process-command", bookBody)
			},
		},
		{
			Name: "Perf: status throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoadGet(ctx, r, base+"/api/status")
			},
		},
	}
}

// commandCase posts one command and checks the ActionResult body, not just the
// HTTP status.
func (r *Runner) commandCase(ctx context.Context, base, command string, wantSuccess bool, wantAction string) Result {
	body, _ := json.Marshal(map[string]any{"command": command})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/process-command", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	var result struct {
		Success bool   `json:"success"`
		Action  string `json:"action"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Status: "FAIL", Latency: latency, Note: err.Error()}
	}
	if result.Success != wantSuccess || result.Action != wantAction {
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("success=%v action=%s", result.Success, result.Action)}
	}
	return Result{Status: "PASS", Latency: latency}
}

func httpCase(name, url string, body any, okStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func concurrentCommands(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	wg := sync.WaitGroup{}
	succ := 0
	mu := sync.Mutex{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
			req.Header.Set("Content-Type", "application/json")
			resp, err := r.httpc.Do(req)
			if err != nil {
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			mu.Lock()
			if resp.StatusCode == http.StatusOK {
				succ++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if succ == r.cfg.Concurrency {
		return Result{Status: "PASS", Note: fmt.Sprintf("success=%d", succ)}
	}
	return Result{Status: "FAIL", Note: fmt.Sprintf("success=%d/%d", succ, r.cfg.Concurrency)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	return perfRun(ctx, r, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

func perfLoadGet(ctx context.Context, r *Runner, url string) Result {
	return perfRun(ctx, r, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	})
}

func perfRun(ctx context.Context, r *Runner, newRequest func() (*http.Request, error)) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, err := newRequest()
				if err != nil {
					return
				}
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
