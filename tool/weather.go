package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ai "github.com/cmathias/agentloop"
)

// WeatherToolOption configures the weather tool.
type WeatherToolOption func(*weatherToolConfig)

type weatherToolConfig struct {
	client      *http.Client
	geocodeURL  string
	forecastURL string
	timeout     time.Duration
}

// WithWeatherHTTPClient sets a custom HTTP client.
func WithWeatherHTTPClient(c *http.Client) WeatherToolOption {
	return func(cfg *weatherToolConfig) {
		cfg.client = c
	}
}

// WithGeocodeURL overrides the geocoding endpoint (used in tests).
func WithGeocodeURL(u string) WeatherToolOption {
	return func(cfg *weatherToolConfig) {
		cfg.geocodeURL = u
	}
}

// WithForecastURL overrides the forecast endpoint (used in tests).
func WithForecastURL(u string) WeatherToolOption {
	return func(cfg *weatherToolConfig) {
		cfg.forecastURL = u
	}
}

// WithWeatherTimeout sets the request timeout. Default is 10 seconds.
func WithWeatherTimeout(d time.Duration) WeatherToolOption {
	return func(cfg *weatherToolConfig) {
		cfg.timeout = d
	}
}

func applyWeatherOpts(opts []WeatherToolOption) *weatherToolConfig {
	cfg := &weatherToolConfig{
		geocodeURL:  "https://geocoding-api.open-meteo.com/v1/search",
		forecastURL: "https://api.open-meteo.com/v1/forecast",
		timeout:     10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	return cfg
}

// weatherArgs defines arguments for the weather tool.
type weatherArgs struct {
	City string `json:"city" desc:"City name, e.g. Tokyo" required:"true"`
	Unit string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit" default:"celsius"`
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Humidity    float64 `json:"relative_humidity_2m"`
	} `json:"current"`
}

// WMO weather interpretation codes.
var weatherConditions = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Foggy", 48: "Rime fog", 51: "Light drizzle", 53: "Drizzle",
	55: "Dense drizzle", 61: "Slight rain", 63: "Rain", 65: "Heavy rain",
	71: "Light snow", 73: "Snow", 75: "Heavy snow", 95: "Thunderstorm",
}

// NewWeatherTool creates the get_weather tool backed by the Open-Meteo
// geocoding and forecast APIs. Lookup failures are reported as result text,
// never as errors, so the agent loop can continue.
func NewWeatherTool(opts ...WeatherToolOption) Registration {
	cfg := applyWeatherOpts(opts)

	return Registration{
		Tool: ai.Tool{
			Name:        "get_weather",
			Description: "Get current weather for a city. Args: city (required), unit (optional: celsius/fahrenheit)",
			Parameters:  ai.MustSchemaFor[weatherArgs](),
			Source:      "Open-Meteo API",
			SourceURL:   "https://open-meteo.com",
		},
		Handler: func(ctx context.Context, call ai.ToolCall) (string, error) {
			var args weatherArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return fmt.Sprintf("Error: invalid weather arguments: %v", err), nil
			}
			return cfg.lookup(ctx, args), nil
		},
	}
}

func (cfg *weatherToolConfig) lookup(ctx context.Context, args weatherArgs) string {
	if strings.TrimSpace(args.City) == "" {
		return "Error: city is required"
	}

	geo, err := fetchJSON[geocodeResponse](ctx, cfg.client,
		fmt.Sprintf("%s?name=%s&count=1&language=en", cfg.geocodeURL, url.QueryEscape(args.City)))
	if err != nil {
		return fmt.Sprintf("Error fetching weather: %v", err)
	}
	if len(geo.Results) == 0 {
		return fmt.Sprintf("Could not find city: %s", args.City)
	}
	place := geo.Results[0]

	tempUnit := "celsius"
	unitSymbol := "°C"
	if strings.EqualFold(args.Unit, "fahrenheit") {
		tempUnit = "fahrenheit"
		unitSymbol = "°F"
	}

	forecast, err := fetchJSON[forecastResponse](ctx, cfg.client, fmt.Sprintf(
		"%s?latitude=%v&longitude=%v&current=temperature_2m,weather_code,wind_speed_10m,relative_humidity_2m&temperature_unit=%s",
		cfg.forecastURL, place.Latitude, place.Longitude, tempUnit))
	if err != nil {
		return fmt.Sprintf("Error fetching weather: %v", err)
	}
	if forecast.Current == nil {
		return fmt.Sprintf("No weather data for %s", place.Name)
	}
	current := forecast.Current

	condition, ok := weatherConditions[current.WeatherCode]
	if !ok {
		condition = "Unknown"
	}

	return fmt.Sprintf("**%s, %s**\n- %s\n- Temperature: %v%s\n- Humidity: %v%%\n- Wind: %v km/h",
		place.Name, place.Country, condition,
		current.Temperature, unitSymbol, current.Humidity, current.WindSpeed)
}

// fetchJSON performs a GET request and decodes the JSON response body.
// Response bodies are capped at 1MB.
func fetchJSON[T any](ctx context.Context, client *http.Client, rawURL string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "agentloop/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
