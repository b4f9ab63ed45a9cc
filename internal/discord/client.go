package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

const (
	apiPrefix         = "/api/v1"
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond

	defaultRequestRate  = rate.Limit(10)
	defaultRequestBurst = 20
)

// ErrResultPending is returned by GetResult while the contest is still running
var ErrResultPending = errors.New("contest result is pending")

// ErrResultCancelled is returned by GetResult for cancelled contests
var ErrResultCancelled = errors.New("contest was cancelled")

// APIClient handles communication with the contest HTTP API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
	// Limiter caps the request rate towards the API; nil means unlimited
	Limiter *rate.Limiter
}

// ContestDetail is a contest together with its questions
type ContestDetail struct {
	domain.Contest
	Questions []domain.PredictionQuestion `json:"questions"`
}

// SubmitPredictionRequest is the body of a prediction submission
type SubmitPredictionRequest struct {
	ParticipantID string    `json:"participant_id"`
	QuestionID    uuid.UUID `json:"question_id"`
	Choice        string    `json:"choice"`
	Confidence    int       `json:"confidence"`
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: defaultTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
		Limiter:    rate.NewLimiter(defaultRequestRate, defaultRequestBurst),
	}
}

// doRequest sends one API call. Transport failures and 5xx responses are
// retried with exponential backoff; every attempt waits on the limiter.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	var lastErr error
	for attempt := range c.MaxRetries + 1 {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.RetryDelay<<(attempt-1)); err != nil {
				return nil, err
			}
		}
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set(headerAPIKey, c.APIKey)
		}

		resp, err := c.Client.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = apiError(resp)
			resp.Body.Close()
		default:
			return resp, nil
		}
		slog.Warn("Contest API call failed", "method", method, "path", path, "attempt", attempt, "error", lastErr)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// apiError turns a non-success response into an error carrying the server's message
func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// getJSON fetches path and decodes a 200 response into out
func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListContests lists contests, optionally filtered by state
func (c *APIClient) ListContests(ctx context.Context, state domain.ContestState, limit int) ([]domain.Contest, error) {
	params := url.Values{}
	if state != "" {
		params.Set("state", string(state))
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	path := apiPrefix + "/contests"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var contests []domain.Contest
	if err := c.getJSON(ctx, path, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// GetContest retrieves a contest and its questions
func (c *APIClient) GetContest(ctx context.Context, contestID uuid.UUID) (*ContestDetail, error) {
	var detail ContestDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s/contests/%s", apiPrefix, contestID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetLeaderboard retrieves the live standings
func (c *APIClient) GetLeaderboard(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := c.getJSON(ctx, fmt.Sprintf("%s/contests/%s/leaderboard", apiPrefix, contestID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetHistory retrieves one participant's submissions
func (c *APIClient) GetHistory(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error) {
	path := fmt.Sprintf("%s/contests/%s/participants/%s/history", apiPrefix, contestID, url.PathEscape(participantID))
	var history []domain.PredictionSubmission
	if err := c.getJSON(ctx, path, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// GetResult retrieves the finalized result.
// Returns ErrResultPending or ErrResultCancelled when none is available.
func (c *APIClient) GetResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/contests/%s/result", apiPrefix, contestID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusAccepted:
		return nil, ErrResultPending
	case http.StatusConflict:
		return nil, ErrResultCancelled
	default:
		return nil, apiError(resp)
	}

	var result domain.ContestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}

// SubmitPrediction creates or replaces a prediction
func (c *APIClient) SubmitPrediction(ctx context.Context, req SubmitPredictionRequest) (*domain.PredictionSubmission, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/predictions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var sub domain.PredictionSubmission
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}
	return &sub, nil
}

// Ping reports whether the API answers its liveness probe
func (c *APIClient) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
