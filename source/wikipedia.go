// Package source fetches page existence and outgoing links from the
// Wikipedia Action API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
	"golang.org/x/time/rate"
)

// Wikipedia is a rate limited client for the MediaWiki Action API
type Wikipedia struct {
	client     *http.Client
	limiter    *rate.Limiter
	apiURL     string
	userAgent  string
	maxRetries int
	log        *slog.Logger
}

// NewWikipedia creates a client for the configured Wikipedia language edition
func NewWikipedia(config model.CrawlConfig, logger *slog.Logger) *Wikipedia {
	apiURL := fmt.Sprintf("https://%s.wikipedia.org/w/api.php", config.Language)
	return NewWikipediaAPI(apiURL, config, logger)
}

// NewWikipediaAPI creates a client against an explicit API endpoint.
// Used by tests to point the client at a local server.
func NewWikipediaAPI(apiURL string, config model.CrawlConfig, logger *slog.Logger) *Wikipedia {
	if logger == nil {
		logger = slog.Default()
	}
	requestsPerSec := config.RequestsPerSec
	if requestsPerSec <= 0 {
		requestsPerSec = 1
	}

	return &Wikipedia{
		client:     &http.Client{Timeout: config.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		apiURL:     apiURL,
		userAgent:  config.UserAgent,
		maxRetries: config.MaxRetries,
		log:        logger,
	}
}

// queryResponse is the subset of the Action API query response we read
type queryResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Continue struct {
		PlContinue string `json:"plcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Invalid bool   `json:"invalid"`
			Links   []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
}

// Exists reports whether the page with the given title exists.
// A missing page is not an error.
func (w *Wikipedia) Exists(ctx context.Context, title string) (bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("titles", title)

	response, err := w.query(ctx, params)
	if err != nil {
		return false, err
	}

	if len(response.Query.Pages) == 0 {
		return false, nil
	}
	page := response.Query.Pages[0]
	return !page.Missing && !page.Invalid, nil
}

// FetchLinks returns the main namespace link titles of the page, in API
// order, following plcontinue pagination. Each title appears once.
func (w *Wikipedia) FetchLinks(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "links")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "max")
	params.Set("titles", title)

	seen := map[string]struct{}{}
	var titles []string
	for {
		response, err := w.query(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, page := range response.Query.Pages {
			for _, link := range page.Links {
				if _, ok := seen[link.Title]; ok {
					continue
				}
				seen[link.Title] = struct{}{}
				titles = append(titles, link.Title)
			}
		}

		if response.Continue.PlContinue == "" {
			break
		}
		params.Set("plcontinue", response.Continue.PlContinue)
	}

	w.log.Debug("Fetched links", slog.String("title", title), slog.Int("links", len(titles)))

	return titles, nil
}

// query performs one rate limited, retried API request
func (w *Wikipedia) query(ctx context.Context, params url.Values) (*queryResponse, error) {
	return helper.RetryWithContext(ctx, w.maxRetries, func(ctx context.Context) (*queryResponse, error) {
		if err := w.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, w.apiURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, helper.NewError("build api request", err)
		}
		request.Header.Set("User-Agent", w.userAgent)

		httpResponse, err := w.client.Do(request)
		if err != nil {
			return nil, helper.NewError("execute api request", err)
		}
		defer httpResponse.Body.Close()

		if httpResponse.StatusCode != http.StatusOK {
			return nil, helper.NewError("execute api request", fmt.Errorf("unexpected status %d", httpResponse.StatusCode))
		}

		response := &queryResponse{}
		if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
			return nil, helper.NewError("decode api response", err)
		}
		if response.Error != nil {
			return nil, helper.NewError("query api", fmt.Errorf("%s: %s", response.Error.Code, response.Error.Info))
		}

		return response, nil
	})
}
