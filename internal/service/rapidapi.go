package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/mealplan/backend/internal/model"
)

const rapidAPI = "rapidapi"

// RapidAPIOptions configures a RapidAPIClient
type RapidAPIOptions struct {
	Key        string
	Host       string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

// RapidAPIClient runs free-text recipe searches through the RapidAPI recipe proxy
type RapidAPIClient struct {
	key        string
	host       string
	baseURL    string
	client     *http.Client
	maxRetries int
}

// NewRapidAPIClient creates a new RapidAPIClient instance
func NewRapidAPIClient(opts RapidAPIOptions) *RapidAPIClient {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://" + opts.Host
	}

	return &RapidAPIClient{
		key:        opts.Key,
		host:       opts.Host,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     client,
		maxRetries: opts.MaxRetries,
	}
}

// Name identifies the searcher in logs and cache keys
func (c *RapidAPIClient) Name() string {
	return rapidAPI
}

// Search posts the query and returns the recipes of the hits envelope
func (c *RapidAPIClient) Search(ctx context.Context, query string) ([]model.RecipeCandidate, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	call := upstreamCall{
		api:        rapidAPI,
		client:     c.client,
		maxRetries: c.maxRetries,
		newRequest: func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recipee-search", bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("x-rapidapi-key", c.key)
			req.Header.Set("x-rapidapi-host", c.host)
			return req, nil
		},
	}

	body, err := call.do(ctx)
	if err != nil {
		return nil, err
	}
	return decodeHits(body, rapidAPI)
}
