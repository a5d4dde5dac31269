package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gofo-dispatch/internal/domain"
)

const directionsPath = "/v2/directions/driving-car"

// Client calls the OpenRouteService directions API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an OpenRouteService client. An empty API key is allowed
// at construction; GetRoute fails fast without one.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Segments []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"segments"`
	} `json:"routes"`
}

// GetRoute fetches a driving route between two points. Coordinates go over
// the wire in [lon, lat] order.
func (c *Client) GetRoute(ctx context.Context, from, to domain.Coordinate) (Route, error) {
	if c.apiKey == "" {
		return Route{}, &ProviderError{Message: "api key is not configured"}
	}

	body, err := json.Marshal(directionsRequest{
		Coordinates: [][2]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
	})
	if err != nil {
		return Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+directionsPath, bytes.NewReader(body))
	if err != nil {
		return Route{}, fmt.Errorf("build directions request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Route{}, &ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Route{}, &ProviderError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var out directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Route{}, &ProviderError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(out.Routes) == 0 || len(out.Routes[0].Segments) == 0 {
		return Route{}, &ProviderError{Message: "response has no route segments"}
	}

	seg := out.Routes[0].Segments[0]
	return Route{DurationSeconds: seg.Duration, DistanceMeters: seg.Distance}, nil
}
