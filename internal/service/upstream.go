package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/model"
)

// retryInitialInterval is the first backoff delay between upstream attempts
var retryInitialInterval = 250 * time.Millisecond

const maxErrorBodyLen = 256

// upstreamCall performs one upstream request with throttling and retries.
// Transport failures, 429 and 5xx responses are retried; other non-200
// responses fail immediately. Every returned error is an *AppError.
type upstreamCall struct {
	api     string
	client  *http.Client
	limiter *rate.Limiter
	// maxWait bounds each wait for a throttle token. Zero waits as long as ctx allows.
	maxWait    time.Duration
	maxRetries int
	newRequest func(ctx context.Context) (*http.Request, error)
}

func (u upstreamCall) do(ctx context.Context) ([]byte, error) {
	var body []byte

	operation := func() error {
		if err := u.waitForToken(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := u.newRequest(ctx)
		if err != nil {
			return backoff.Permanent(apperrors.NewInternalError(err))
		}

		resp, err := u.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(apperrors.NewNetworkError(ctx.Err(), u.api))
			}
			return apperrors.NewNetworkError(stripURL(err), u.api)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen+1))
			statusErr := apperrors.NewNetworkError(
				fmt.Errorf("%s API error %d: %s", u.api, resp.StatusCode, truncate(data, maxErrorBodyLen)), u.api,
			).WithContext("status", resp.StatusCode)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return apperrors.NewNetworkError(fmt.Errorf("failed to read response: %w", err), u.api)
		}
		body = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(u.maxRetries)), ctx))
	if err != nil {
		if _, ok := err.(*apperrors.AppError); !ok {
			err = apperrors.NewNetworkError(err, u.api)
		}
		return nil, err
	}
	return body, nil
}

// waitForToken blocks until the throttle admits a request. A token that
// would take longer than maxWait fails the call as throttled.
func (u upstreamCall) waitForToken(ctx context.Context) error {
	if u.limiter == nil {
		return nil
	}

	waitCtx := ctx
	if u.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, u.maxWait)
		defer cancel()
	}

	if err := u.limiter.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return apperrors.NewNetworkError(ctx.Err(), u.api)
		}
		return apperrors.NewThrottledError(err, u.api)
	}
	return nil
}

// newLimiter converts a per-minute budget into a token bucket with a burst of
// one, so requests are spaced evenly across the minute.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// stripURL drops the request URL from transport errors; it carries credentials.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// hitsResponse is the search envelope shared by Edamam and the RapidAPI proxy
type hitsResponse struct {
	Hits *[]struct {
		Recipe upstreamRecipe `json:"recipe"`
	} `json:"hits"`
}

type upstreamRecipe struct {
	Label           string   `json:"label"`
	Image           string   `json:"image"`
	URL             string   `json:"url"`
	Source          string   `json:"source"`
	Yield           float64  `json:"yield"`
	Calories        float64  `json:"calories"`
	DietLabels      []string `json:"dietLabels"`
	HealthLabels    []string `json:"healthLabels"`
	IngredientLines []string `json:"ingredientLines"`
	TotalNutrients  map[string]struct {
		Label    string  `json:"label"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"totalNutrients"`
}

// decodeHits parses a hits envelope. A body without a hits array is a parse
// error, an empty hits array is a valid empty result.
func decodeHits(body []byte, api string) ([]model.RecipeCandidate, error) {
	var resp hitsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewParseError(err, api)
	}
	if resp.Hits == nil {
		return nil, apperrors.NewParseError(fmt.Errorf("response has no hits array"), api)
	}

	candidates := make([]model.RecipeCandidate, 0, len(*resp.Hits))
	for _, hit := range *resp.Hits {
		candidates = append(candidates, hit.Recipe.toCandidate())
	}
	return candidates, nil
}

func (r upstreamRecipe) toCandidate() model.RecipeCandidate {
	nutrients := make(map[string]model.Nutrient, len(r.TotalNutrients))
	for key, n := range r.TotalNutrients {
		nutrients[key] = model.Nutrient{Label: n.Label, Quantity: n.Quantity, Unit: n.Unit}
	}

	return model.RecipeCandidate{
		Title:           r.Label,
		Image:           r.Image,
		URL:             r.URL,
		Source:          r.Source,
		Servings:        r.Yield,
		Calories:        r.Calories,
		Nutrients:       nutrients,
		DietLabels:      nonNil(r.DietLabels),
		HealthLabels:    nonNil(r.HealthLabels),
		IngredientLines: r.IngredientLines,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
