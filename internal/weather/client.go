package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultURL is the OpenWeatherMap current weather endpoint.
const DefaultURL = "https://api.openweathermap.org/data/2.5/weather"

// Lookup returns the current temperature of a city in °C; ok is false when
// no data could be obtained.
type Lookup interface {
	CurrentTemperature(ctx context.Context, city string) (tempC float64, ok bool)
}

// Client queries OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

var _ Lookup = (*Client)(nil)

// NewClient creates a Client. Every request is bounded by timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type currentResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Name string `json:"name"`
}

// CurrentTemperature fetches the temperature rounded to whole degrees.
func (c *Client) CurrentTemperature(ctx context.Context, city string) (float64, bool) {
	city = strings.TrimSpace(city)
	if city == "" {
		return 0, false
	}
	t, err := c.fetch(ctx, city)
	if err != nil {
		c.log.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		return 0, false
	}
	return t, true
}

func (c *Client) fetch(ctx context.Context, city string) (float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	c.log.Debug("weather fetched", zap.String("city", city), zap.Float64("temp", body.Main.Temp))
	return math.Round(body.Main.Temp), nil
}

// Noop never has weather data. Used when no API key is configured.
type Noop struct{}

func (Noop) CurrentTemperature(context.Context, string) (float64, bool) { return 0, false }
