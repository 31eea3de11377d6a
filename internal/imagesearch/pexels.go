package imagesearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const pexelsBaseURL = "https://api.pexels.com/v1"

// pexelsSearchResponse is the raw Pexels search API response.
type pexelsSearchResponse struct {
	TotalResults int           `json:"total_results"`
	Photos       []pexelsPhoto `json:"photos"`
}

// pexelsPhoto is a single photo from Pexels search.
type pexelsPhoto struct {
	ID           int64  `json:"id"`
	Photographer string `json:"photographer"`
	URL          string `json:"url"`
	Src          struct {
		Original string `json:"original"`
		Large    string `json:"large"`
		Medium   string `json:"medium"`
	} `json:"src"`
}

// PexelsOpts configures a Pexels client.
type PexelsOpts struct {
	APIKey  string
	BaseURL string        // override for tests
	Timeout time.Duration // per-request timeout (default: 10s)
}

// Pexels is an image Provider backed by the Pexels search API.
type Pexels struct {
	httpClient  *resty.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewPexels creates a new Pexels client.
// Rate limited well under the 200 requests per hour free tier.
func NewPexels(opts PexelsOpts, logger *slog.Logger) *Pexels {
	baseURL := pexelsBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", opts.APIKey)

	return &Pexels{
		httpClient: httpClient,
		// 200 requests per hour = 1 request per 18 seconds, burst of 5
		rateLimiter: rate.NewLimiter(rate.Every(18*time.Second), 5),
		logger:      logger,
	}
}

// FindImage searches Pexels for a photo matching the query and returns
// the single best match, or nil when nothing matched.
func (p *Pexels) FindImage(ctx context.Context, query string) (*Result, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result := &pexelsSearchResponse{}

	res, err := p.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    query,
			"per_page": "1",
		}).
		SetResult(result).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("pexels search failed: status %d", res.StatusCode())
	}

	if len(result.Photos) == 0 {
		p.logger.Debug("no pexels results", "query", query)
		return nil, nil
	}

	photo := result.Photos[0]
	imageURL := photo.Src.Large
	if imageURL == "" {
		imageURL = photo.Src.Original
	}

	p.logger.Debug("pexels photo selected",
		"query", query,
		"photo_id", photo.ID,
		"photographer", photo.Photographer,
	)

	return &Result{
		URL:         imageURL,
		Attribution: fmt.Sprintf("Photo by %s on Pexels", photo.Photographer),
	}, nil
}
