package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/observability"
)

// Client implements domain.WeatherProvider using the OpenWeather current weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client. Temperatures are requested in metric units.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Current fetches the current weather for city.
func (c *Client) Current(ctx context.Context, city string) (domain.Observation, error) {
	params := url.Values{
		"units": {"metric"},
		"appid": {c.apiKey},
		"q":     {city},
	}

	start := time.Now()
	obs, outcome, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode(), city)
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	c.metrics.WeatherRequests.WithLabelValues(outcome).Inc()

	if err != nil {
		c.logger.Debug("weather lookup failed", "city", city, "outcome", outcome, "error", err)
		return domain.Observation{}, err
	}
	return obs, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, city string) (domain.Observation, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Observation{}, "error", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Observation{}, "error", fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Observation{}, "not_found", &NotFoundError{City: city}
	case resp.StatusCode != http.StatusOK:
		return domain.Observation{}, "error", &APIError{StatusCode: resp.StatusCode}
	}

	var owResp response
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.Observation{}, "error", fmt.Errorf("decode response: %w", err)
	}

	var description string
	if len(owResp.Weather) > 0 {
		description = owResp.Weather[0].Description
	}

	name := owResp.Name
	if name == "" {
		name = city
	}

	return domain.NewObservation(name, owResp.Main.Temp, description, owResp.Main.Humidity, owResp.Wind.Speed), "success", nil
}

// NotFoundError reports a city OpenWeather does not know. It matches domain.ErrCityNotFound.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("City %q not found.", e.City)
}

func (e *NotFoundError) Unwrap() error {
	return domain.ErrCityNotFound
}

// APIError reports any other non-200 response.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenWeather error (%d)", e.StatusCode)
}

// OpenWeather API response types.

type response struct {
	Name    string        `json:"name"`
	Main    mainReadings  `json:"main"`
	Weather []weatherDesc `json:"weather"`
	Wind    windReadings  `json:"wind"`
}

type mainReadings struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

type weatherDesc struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type windReadings struct {
	Speed float64 `json:"speed"`
}
