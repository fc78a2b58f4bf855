package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pageza/mealplan/backend/internal/model"
)

const edamamAPI = "edamam"

// EdamamOptions configures an EdamamClient
type EdamamOptions struct {
	AppID             string
	AppKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	MaxRetries        int
	HTTPClient        *http.Client
}

// EdamamClient fetches meal candidates from the Edamam recipe search API
type EdamamClient struct {
	appID      string
	appKey     string
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxWait    time.Duration
	maxRetries int
}

// NewEdamamClient creates a new EdamamClient instance
func NewEdamamClient(opts EdamamOptions) *EdamamClient {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.edamam.com"
	}

	return &EdamamClient{
		appID:      opts.AppID,
		appKey:     opts.AppKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     client,
		limiter:    newLimiter(opts.RequestsPerMinute),
		maxWait:    opts.Timeout,
		maxRetries: opts.MaxRetries,
	}
}

// Name identifies the provider in logs and cache keys
func (c *EdamamClient) Name() string {
	return edamamAPI
}

// FetchCandidates searches recipes for one meal category. The diet, carb
// ceiling and health labels are passed to Edamam verbatim.
func (c *EdamamClient) FetchCandidates(ctx context.Context, category model.MealCategory, constraint model.DietConstraint) ([]model.RecipeCandidate, error) {
	endpoint := c.searchURL(category, constraint)

	call := upstreamCall{
		api:        edamamAPI,
		client:     c.client,
		limiter:    c.limiter,
		maxWait:    c.maxWait,
		maxRetries: c.maxRetries,
		newRequest: func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")
			return req, nil
		},
	}

	body, err := call.do(ctx)
	if err != nil {
		return nil, err
	}
	return decodeHits(body, edamamAPI)
}

func (c *EdamamClient) searchURL(category model.MealCategory, constraint model.DietConstraint) string {
	q := url.Values{}
	q.Set("q", "")
	if constraint.Diet != "" {
		q.Set("diet", constraint.Diet)
	}
	q.Set("mealType", string(category))
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	if ceiling, ok := constraint.Ceiling(category); ok {
		q.Set("maxCarbs", strconv.FormatFloat(ceiling, 'f', -1, 64))
	}
	for _, label := range constraint.HealthLabels {
		q.Add("health", label)
	}
	return c.baseURL + "/search?" + q.Encode()
}
