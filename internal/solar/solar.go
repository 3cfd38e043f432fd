// Package solar fetches average daily surface irradiance for a location.
package solar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DefaultBaseURL is the NASA POWER daily point endpoint.
const DefaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

const irradianceParameter = "ALLSKY_SFC_SW_DWN"

// ErrNoData means the provider answered but had no usable samples.
var ErrNoData = errors.New("no irradiance samples")

// Provider returns the mean daily irradiance in kWh/m2/day.
type Provider interface {
	Irradiance(ctx context.Context, lat, lon float64) (float64, error)
}

// PowerClient queries the NASA POWER API.
type PowerClient struct {
	BaseURL string
	Start   string // YYYYMMDD
	End     string // YYYYMMDD
	HTTP    *http.Client
}

// NewPowerClient returns a client averaging calendar year 2023.
func NewPowerClient(baseURL string) *PowerClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PowerClient{
		BaseURL: baseURL,
		Start:   "20230101",
		End:     "20231231",
		HTTP:    http.DefaultClient,
	}
}

type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// Irradiance fetches the daily series and returns its mean. Fill values
// (negative samples) are skipped.
func (c *PowerClient) Irradiance(ctx context.Context, lat, lon float64) (float64, error) {
	q := url.Values{}
	q.Set("parameters", irradianceParameter)
	q.Set("community", "RE")
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("start", c.Start)
	q.Set("end", c.End)
	q.Set("format", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build irradiance request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch irradiance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch irradiance: unexpected status %d", resp.StatusCode)
	}

	var body powerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode irradiance response: %w", err)
	}

	return MeanIrradiance(body.Properties.Parameter[irradianceParameter])
}

// MeanIrradiance averages a date-keyed series, ignoring fill values.
func MeanIrradiance(series map[string]float64) (float64, error) {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	values := make([]float64, 0, len(dates))
	for _, d := range dates {
		if v := series[d]; v >= 0 {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0, ErrNoData
	}
	return stat.Mean(values, nil), nil
}

// Static is a fixed-value provider for offline runs.
type Static float64

// Irradiance returns the fixed value.
func (s Static) Irradiance(context.Context, float64, float64) (float64, error) {
	return float64(s), nil
}
