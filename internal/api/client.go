// Package api implements the client for the remote persistence API. The
// ledger talks to it through the Client interface; tests substitute a
// scripted fake.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/models"
)

// ErrNotFound is returned when the server has no record for the requested
// resource. Callers treat a missing day as an empty day, not a failure.
var ErrNotFound = errors.New("not found")

// Client is the remote persistence surface the ledger depends on. Every
// method receives the bearer token explicitly; the client never fetches
// tokens itself.
type Client interface {
	GetDay(ctx context.Context, date, token string) (models.DailyNutrition, error)
	ListDays(ctx context.Context, token string) ([]models.DailyNutrition, error)
	SaveDay(ctx context.Context, day models.DailyNutrition, token string) error
	GetUser(ctx context.Context, email, token string) (models.User, error)
	CreateUser(ctx context.Context, user models.User, token string) (models.User, error)
}

// HTTPClient talks JSON to the platefit backend.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout: constants.RequestTimeout,
		},
	}
}

func (c *HTTPClient) GetDay(ctx context.Context, date, token string) (models.DailyNutrition, error) {
	var day models.DailyNutrition
	path := "/meals?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &day); err != nil {
		return models.DailyNutrition{}, err
	}
	return day, nil
}

func (c *HTTPClient) ListDays(ctx context.Context, token string) ([]models.DailyNutrition, error) {
	var days []models.DailyNutrition
	if err := c.do(ctx, http.MethodGet, "/meals", token, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *HTTPClient) SaveDay(ctx context.Context, day models.DailyNutrition, token string) error {
	path := "/meals/" + url.PathEscape(day.Date)
	return c.do(ctx, http.MethodPut, path, token, day, nil)
}

func (c *HTTPClient) GetUser(ctx context.Context, email, token string) (models.User, error) {
	var user models.User
	path := "/users/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, user models.User, token string) (models.User, error) {
	var created models.User
	if err := c.do(ctx, http.MethodPost, "/users", token, user, &created); err != nil {
		return models.User{}, err
	}
	return created, nil
}

// do performs a single request with the bearer token attached and decodes
// the JSON response into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to serialize request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		// Keep a short excerpt of the body for diagnostics.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
