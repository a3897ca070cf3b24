package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/herego/herego"
	"github.com/herego/herego/internal/transport"
)

const (
	// ServiceName identifies this service in logs and metrics.
	ServiceName = "here-weather"

	// DefaultBaseURL is the HERE Destination Weather API report endpoint.
	DefaultBaseURL = "https://weather.api.here.com/weather/1.0/report.json"
)

// ClientConfig holds configuration for the weather client.
type ClientConfig struct {
	// Credentials are the HERE app_id/app_code pair (required).
	Credentials herego.Credentials

	// BaseURL is the report endpoint (optional, defaults to the HERE
	// Destination Weather API v1.0).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses an instrumented client with defaults.
	HTTPClient herego.HTTPDoer

	// Timeout is the per-request timeout (optional, defaults to 20s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a HERE Destination Weather API client.
type Client struct {
	creds      herego.Credentials
	baseURL    string
	httpClient herego.HTTPDoer
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new weather client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = herego.DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := transport.DefaultClientConfig(ServiceName)
		clientCfg.Timeout = timeout
		clientCfg.Logger = cfg.Logger
		httpClient = transport.NewClient(clientCfg)
	}

	return &Client{
		creds:      cfg.Credentials,
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     cfg.Logger,
	}
}

// SetCredentials replaces the credentials used on subsequent calls. It must
// not be called while operations are in flight.
func (c *Client) SetCredentials(creds herego.Credentials) {
	c.creds = creds
}

// ReportByLocationName requests a weather report for a named place, for
// example "Berlin" or "Chicago".
func (c *Client) ReportByLocationName(ctx context.Context, product Product, name string) (*Report, error) {
	params := herego.NewParams()
	params.Set("product", string(product))
	params.Set("name", name)
	c.addAuth(params)

	return c.report(ctx, params, product, "ReportByLocationName")
}

// ReportByCoordinates requests a weather report for a coordinate pair.
func (c *Client) ReportByCoordinates(ctx context.Context, product Product, lat, lon float64) (*Report, error) {
	params := herego.NewParams()
	params.Set("product", string(product))
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	c.addAuth(params)

	return c.report(ctx, params, product, "ReportByCoordinates")
}

// ReportByZipCode requests a weather report for a US ZIP code.
func (c *Client) ReportByZipCode(ctx context.Context, product Product, zipCode string) (*Report, error) {
	params := herego.NewParams()
	params.Set("product", string(product))
	params.Set("zipcode", zipCode)
	c.addAuth(params)

	return c.report(ctx, params, product, "ReportByZipCode")
}

// addAuth injects the credential parameters every operation requires.
func (c *Client) addAuth(p *herego.Params) {
	p.Set("app_id", c.creds.AppID)
	p.Set("app_code", c.creds.AppCode)
}

// report performs the GET and dispatches on the envelope shape: a payload
// carrying the requested product group yields a Report, a payload carrying
// the Type discriminator yields an error.
func (c *Client) report(ctx context.Context, params *herego.Params, product Product, operation string) (*Report, error) {
	url, err := herego.BuildURL(c.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	c.logger.Debug().
		Str("operation", operation).
		Str("product", string(product)).
		Msg("requesting weather report")

	body, err := herego.Get(ctx, c.httpClient, url, c.timeout, operation)
	if err != nil {
		return nil, err
	}

	var envelope hereReport
	if err := herego.DecodeJSON(body, &envelope, operation); err != nil {
		return nil, err
	}

	if envelope.Type != "" {
		return nil, c.errorFromEnvelope(&envelope, operation)
	}

	report, ok := toReport(&envelope, product)
	if !ok {
		return nil, &herego.Error{
			Operation: operation,
			Message:   "error occurred on " + operation,
		}
	}

	c.logger.Debug().
		Str("operation", operation).
		Str("product", string(product)).
		Msg("received weather report")

	return report, nil
}

// errorFromEnvelope maps the weather error payload to a typed error. The
// Type field is the documented discriminant; message text is never
// inspected.
func (c *Client) errorFromEnvelope(env *hereReport, operation string) error {
	message := errorMessage(env.Message)
	if message == "" {
		message = "error occurred on " + operation
	}

	apiErr := &herego.Error{
		Operation: operation,
		Code:      env.Type,
		Message:   message,
	}

	switch env.Type {
	case "Unauthorized":
		apiErr.Err = herego.ErrUnauthorized
	case "Invalid Request":
		apiErr.Err = herego.ErrInvalidRequest
	}

	return apiErr
}

// errorMessage extracts the error description. The service sends Message as
// a list of strings on most endpoints and as a bare string on a few.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}

// toReport converts the wire report to the domain model. ok is false when
// the payload lacks the group for the requested product.
func toReport(wire *hereReport, product Product) (*Report, bool) {
	report := &Report{
		Product:      product,
		FeedCreation: wire.FeedCreation,
		Metric:       wire.Metric,
		FetchedAt:    time.Now(),
	}

	switch product {
	case ProductObservation:
		if wire.Observations == nil || len(wire.Observations.Location) == 0 {
			return nil, false
		}
		loc := &wire.Observations.Location[0]
		report.Location = toLocation(loc.Country, loc.State, loc.City, loc.Latitude, loc.Longitude, loc.Distance, loc.Timezone)
		for i := range wire.Observations.Location {
			for j := range wire.Observations.Location[i].Observation {
				report.Observations = append(report.Observations, toObservation(&wire.Observations.Location[i].Observation[j]))
			}
		}

	case ProductForecast7Days:
		return forecastReport(report, wire.Forecasts)
	case ProductForecast7DaysSimple:
		return forecastReport(report, wire.DailyForecasts)
	case ProductForecastHourly:
		return forecastReport(report, wire.HourlyForecasts)

	case ProductForecastAstronomy:
		if wire.Astronomy == nil {
			return nil, false
		}
		report.Location = toLocation(wire.Astronomy.Country, wire.Astronomy.State, wire.Astronomy.City, wire.Astronomy.Latitude, wire.Astronomy.Longitude, 0, wire.Astronomy.Timezone)
		for i := range wire.Astronomy.Astronomy {
			wa := &wire.Astronomy.Astronomy[i]
			report.Astronomy = append(report.Astronomy, Astronomy{
				Sunrise:       wa.Sunrise,
				Sunset:        wa.Sunset,
				Moonrise:      wa.Moonrise,
				Moonset:       wa.Moonset,
				MoonPhase:     wa.MoonPhase,
				MoonPhaseDesc: wa.MoonPhaseDesc,
				IconName:      wa.IconName,
				City:          wa.City,
				UTCTime:       wa.UTCTime,
			})
		}

	case ProductAlerts:
		if wire.Alerts == nil {
			return nil, false
		}
		report.Location = toLocation(wire.Alerts.Country, wire.Alerts.State, wire.Alerts.City, wire.Alerts.Latitude, wire.Alerts.Longitude, 0, wire.Alerts.Timezone)
		for i := range wire.Alerts.Alerts {
			wa := &wire.Alerts.Alerts[i]
			alert := Alert{
				Type:        wa.Type,
				Description: wa.Description,
			}
			for _, seg := range wa.TimeSegment {
				alert.TimeSegments = append(alert.TimeSegments, AlertTimeSegment{
					Value:     seg.Value,
					Segment:   seg.Segment,
					DayOfWeek: seg.DayOfWeek,
				})
			}
			report.Alerts = append(report.Alerts, alert)
		}

	case ProductNWSAlerts:
		if wire.NWSAlerts == nil {
			return nil, false
		}
		for i := range wire.NWSAlerts.Watch {
			report.NWSWatches = append(report.NWSWatches, toNWSAlert(&wire.NWSAlerts.Watch[i]))
		}
		for i := range wire.NWSAlerts.Warning {
			report.NWSWarnings = append(report.NWSWarnings, toNWSAlert(&wire.NWSAlerts.Warning[i]))
		}

	default:
		return nil, false
	}

	return report, true
}

// forecastReport fills the shared forecast group shape used by the daily and
// hourly products.
func forecastReport(report *Report, group *hereForecastGroup) (*Report, bool) {
	if group == nil {
		return nil, false
	}

	loc := &group.ForecastLocation
	report.Location = toLocation(loc.Country, loc.State, loc.City, loc.Latitude, loc.Longitude, loc.Distance, loc.Timezone)

	for i := range loc.Forecast {
		wf := &loc.Forecast[i]
		report.Forecasts = append(report.Forecasts, Forecast{
			Daylight:                 wf.Daylight,
			Description:              wf.Description,
			SkyDescription:           wf.SkyDescription,
			Temperature:              parseFloat(wf.Temperature),
			TemperatureDesc:          wf.TemperatureDesc,
			Comfort:                  parseFloat(wf.Comfort),
			HighTemperature:          parseFloat(wf.HighTemperature),
			LowTemperature:           parseFloat(wf.LowTemperature),
			Humidity:                 parseFloat(wf.Humidity),
			DewPoint:                 parseFloat(wf.DewPoint),
			PrecipitationProbability: parseFloat(wf.PrecipitationProbability),
			PrecipitationDesc:        wf.PrecipitationDesc,
			RainFall:                 parseFloat(wf.RainFall),
			SnowFall:                 parseFloat(wf.SnowFall),
			WindSpeed:                parseFloat(wf.WindSpeed),
			WindDirection:            parseFloat(wf.WindDirection),
			WindDesc:                 wf.WindDesc,
			UVIndex:                  parseFloat(wf.UVIndex),
			UVDesc:                   wf.UVDesc,
			BarometerPressure:        parseFloat(wf.BarometerPressure),
			Icon:                     wf.Icon,
			IconName:                 wf.IconName,
			IconLink:                 wf.IconLink,
			DayOfWeek:                wf.DayOfWeek,
			Weekday:                  wf.Weekday,
			UTCTime:                  wf.UTCTime,
		})
	}

	return report, true
}

func toObservation(w *hereObservation) Observation {
	return Observation{
		Daylight:          w.Daylight,
		Description:       w.Description,
		SkyDescription:    w.SkyDescription,
		Temperature:       parseFloat(w.Temperature),
		TemperatureDesc:   w.TemperatureDesc,
		Comfort:           parseFloat(w.Comfort),
		HighTemperature:   parseFloat(w.HighTemperature),
		LowTemperature:    parseFloat(w.LowTemperature),
		Humidity:          parseFloat(w.Humidity),
		DewPoint:          parseFloat(w.DewPoint),
		Precipitation1H:   parseFloat(w.Precipitation1H),
		WindSpeed:         parseFloat(w.WindSpeed),
		WindDirection:     parseFloat(w.WindDirection),
		WindDesc:          w.WindDesc,
		BarometerPressure: parseFloat(w.BarometerPressure),
		Visibility:        parseFloat(w.Visibility),
		Icon:              w.Icon,
		IconName:          w.IconName,
		City:              w.City,
		State:             w.State,
		Country:           w.Country,
		Latitude:          w.Latitude,
		Longitude:         w.Longitude,
		Elevation:         w.Elevation,
		UTCTime:           w.UTCTime,
	}
}

func toNWSAlert(w *hereNWSAlert) NWSAlert {
	return NWSAlert{
		Type:                w.Type,
		Description:         w.Description,
		Severity:            w.Severity,
		Message:             w.Message,
		County:              w.County,
		State:               w.State,
		Country:             w.Country,
		ValidFromTimeLocal:  w.ValidFromTimeLocal,
		ValidUntilTimeLocal: w.ValidUntilTimeLocal,
		Latitude:            w.Latitude,
		Longitude:           w.Longitude,
	}
}

func toLocation(country, state, city string, lat, lon, distance, timezone float64) Location {
	return Location{
		Country:   country,
		State:     state,
		City:      city,
		Latitude:  lat,
		Longitude: lon,
		Distance:  distance,
		Timezone:  timezone,
	}
}

// HERE Destination Weather API response structures. Numeric readings arrive
// as strings ("8.90", "*" when unavailable) and are parsed during
// conversion.

type hereReport struct {
	Observations    *hereObservations   `json:"observations"`
	Forecasts       *hereForecastGroup  `json:"forecasts"`
	DailyForecasts  *hereForecastGroup  `json:"dailyForecasts"`
	HourlyForecasts *hereForecastGroup  `json:"hourlyForecasts"`
	Astronomy       *hereAstronomyGroup `json:"astronomy"`
	Alerts          *hereAlertGroup     `json:"alerts"`
	NWSAlerts       *hereNWSAlerts      `json:"nwsAlerts"`
	FeedCreation    string              `json:"feedCreation"`
	Metric          bool                `json:"metric"`

	// Error payload fields; Type set means the call failed.
	Type    string          `json:"Type"`
	Message json.RawMessage `json:"Message"`
}

type hereObservations struct {
	Location []hereObservationLocation `json:"location"`
}

type hereObservationLocation struct {
	Observation []hereObservation `json:"observation"`
	Country     string            `json:"country"`
	State       string            `json:"state"`
	City        string            `json:"city"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Distance    float64           `json:"distance"`
	Timezone    float64           `json:"timezone"`
}

type hereObservation struct {
	Daylight          string  `json:"daylight"`
	Description       string  `json:"description"`
	SkyDescription    string  `json:"skyDescription"`
	Temperature       string  `json:"temperature"`
	TemperatureDesc   string  `json:"temperatureDesc"`
	Comfort           string  `json:"comfort"`
	HighTemperature   string  `json:"highTemperature"`
	LowTemperature    string  `json:"lowTemperature"`
	Humidity          string  `json:"humidity"`
	DewPoint          string  `json:"dewPoint"`
	Precipitation1H   string  `json:"precipitation1H"`
	WindSpeed         string  `json:"windSpeed"`
	WindDirection     string  `json:"windDirection"`
	WindDesc          string  `json:"windDesc"`
	BarometerPressure string  `json:"barometerPressure"`
	Visibility        string  `json:"visibility"`
	Icon              string  `json:"icon"`
	IconName          string  `json:"iconName"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	Country           string  `json:"country"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Elevation         float64 `json:"elevation"`
	UTCTime           string  `json:"utcTime"`
}

type hereForecastGroup struct {
	ForecastLocation hereForecastLocation `json:"forecastLocation"`
}

type hereForecastLocation struct {
	Forecast  []hereForecast `json:"forecast"`
	Country   string         `json:"country"`
	State     string         `json:"state"`
	City      string         `json:"city"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Distance  float64        `json:"distance"`
	Timezone  float64        `json:"timezone"`
}

type hereForecast struct {
	Daylight                 string `json:"daylight"`
	Description              string `json:"description"`
	SkyDescription           string `json:"skyDescription"`
	Temperature              string `json:"temperature"`
	TemperatureDesc          string `json:"temperatureDesc"`
	Comfort                  string `json:"comfort"`
	HighTemperature          string `json:"highTemperature"`
	LowTemperature           string `json:"lowTemperature"`
	Humidity                 string `json:"humidity"`
	DewPoint                 string `json:"dewPoint"`
	PrecipitationProbability string `json:"precipitationProbability"`
	PrecipitationDesc        string `json:"precipitationDesc"`
	RainFall                 string `json:"rainFall"`
	SnowFall                 string `json:"snowFall"`
	WindSpeed                string `json:"windSpeed"`
	WindDirection            string `json:"windDirection"`
	WindDesc                 string `json:"windDesc"`
	UVIndex                  string `json:"uvIndex"`
	UVDesc                   string `json:"uvDesc"`
	BarometerPressure        string `json:"barometerPressure"`
	Icon                     string `json:"icon"`
	IconName                 string `json:"iconName"`
	IconLink                 string `json:"iconLink"`
	DayOfWeek                string `json:"dayOfWeek"`
	Weekday                  string `json:"weekday"`
	UTCTime                  string `json:"utcTime"`
}

type hereAstronomyGroup struct {
	Astronomy []hereAstronomy `json:"astronomy"`
	Country   string          `json:"country"`
	State     string          `json:"state"`
	City      string          `json:"city"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  float64         `json:"timezone"`
}

type hereAstronomy struct {
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
	Moonrise      string  `json:"moonrise"`
	Moonset       string  `json:"moonset"`
	MoonPhase     float64 `json:"moonPhase"`
	MoonPhaseDesc string  `json:"moonPhaseDesc"`
	IconName      string  `json:"iconName"`
	City          string  `json:"city"`
	UTCTime       string  `json:"utcTime"`
}

type hereAlertGroup struct {
	Alerts    []hereAlert `json:"alerts"`
	Country   string      `json:"country"`
	State     string      `json:"state"`
	City      string      `json:"city"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  float64     `json:"timezone"`
}

type hereAlert struct {
	Type        int               `json:"type"`
	Description string            `json:"description"`
	TimeSegment []hereTimeSegment `json:"timeSegment"`
}

type hereTimeSegment struct {
	Value     string `json:"value"`
	Segment   string `json:"segment"`
	DayOfWeek string `json:"day_of_week"`
}

type hereNWSAlerts struct {
	Watch   []hereNWSAlert `json:"watch"`
	Warning []hereNWSAlert `json:"warning"`
}

type hereNWSAlert struct {
	Type                int     `json:"type"`
	Description         string  `json:"description"`
	Severity            int     `json:"severity"`
	Message             string  `json:"message"`
	County              string  `json:"county"`
	State               string  `json:"state"`
	Country             string  `json:"country"`
	ValidFromTimeLocal  string  `json:"validFromTimeLocal"`
	ValidUntilTimeLocal string  `json:"validUntilTimeLocal"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
}
