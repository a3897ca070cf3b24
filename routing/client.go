package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/herego/herego"
	"github.com/herego/herego/internal/transport"
	"github.com/herego/herego/pkg/polyline"
)

const (
	// ServiceName identifies this service in logs and metrics.
	ServiceName = "here-routing"

	// DefaultBaseURL is the HERE Routing API v7.2 calculateroute endpoint.
	DefaultBaseURL = "https://route.cit.api.here.com/routing/7.2/calculateroute.json"
)

// ClientConfig holds configuration for the routing client.
type ClientConfig struct {
	// Credentials are the HERE app_id/app_code pair (required).
	Credentials herego.Credentials

	// BaseURL is the calculateroute endpoint (optional, defaults to the
	// HERE Routing API v7.2).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses an instrumented client with defaults.
	HTTPClient herego.HTTPDoer

	// Timeout is the per-request timeout (optional, defaults to 20s).
	Timeout time.Duration

	// RouteAttributes is sent as the routeattributes parameter on every
	// call when set, e.g. "waypoints,summary,legs,shape" to include the
	// route geometry in responses.
	RouteAttributes string

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a HERE Routing API client.
type Client struct {
	creds      herego.Credentials
	baseURL    string
	httpClient herego.HTTPDoer
	timeout    time.Duration
	routeAttrs string
	logger     zerolog.Logger
}

// NewClient creates a new routing client.
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
		routeAttrs: cfg.RouteAttributes,
		logger:     cfg.Logger,
	}
}

// SetCredentials replaces the credentials used on subsequent calls. It must
// not be called while operations are in flight.
func (c *Client) SetCredentials(creds herego.Credentials) {
	c.creds = creds
}

// CarRoute requests a driving route between two points.
func (c *Client) CarRoute(ctx context.Context, origin, destination Waypoint, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultCarModes)))
	c.addAuth(params)
	params.Set("departure", "now")

	return c.calculate(ctx, params, "CarRoute")
}

// PedestrianRoute requests a walking route between two points.
func (c *Client) PedestrianRoute(ctx context.Context, origin, destination Waypoint, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultPedestrianModes)))
	c.addAuth(params)

	return c.calculate(ctx, params, "PedestrianRoute")
}

// IntermediateRoute requests a driving route from origin to destination
// passing through via.
func (c *Client) IntermediateRoute(ctx context.Context, origin, via, destination Waypoint, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", via.Format())
	params.Set("waypoint2", destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultCarModes)))
	c.addAuth(params)

	return c.calculate(ctx, params, "IntermediateRoute")
}

// PublicTransport requests a public transit route between two points.
// combineChange enables the change maneuver in the response, which marks a
// transit line change.
func (c *Client) PublicTransport(ctx context.Context, origin, destination Waypoint, combineChange bool, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultTransitModes)))
	params.SetBool("combine_change", combineChange)
	c.addAuth(params)

	return c.calculate(ctx, params, "PublicTransport")
}

// LocationNearMotorway requests the fastest car route from origin to a
// destination snapped to the nearest street.
func (c *Client) LocationNearMotorway(ctx context.Context, origin, destination Waypoint, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", "street!!"+destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultCarModes)))
	c.addAuth(params)

	return c.calculate(ctx, params, "LocationNearMotorway")
}

// TruckRoute requests the fastest truck route between two points.
func (c *Client) TruckRoute(ctx context.Context, origin, destination Waypoint, modes ...RouteMode) (*Response, error) {
	params := herego.NewParams()
	params.Set("waypoint0", origin.Format())
	params.Set("waypoint1", destination.Format())
	params.Set("mode", joinModes(modesOrDefault(modes, defaultTruckModes)))
	c.addAuth(params)

	return c.calculate(ctx, params, "TruckRoute")
}

// addAuth injects the credential parameters every operation requires.
func (c *Client) addAuth(p *herego.Params) {
	p.Set("app_id", c.creds.AppID)
	p.Set("app_code", c.creds.AppCode)
}

// calculate performs the GET and dispatches on the envelope shape: a
// "response" key yields a Response, anything else an error built from the
// payload details.
func (c *Client) calculate(ctx context.Context, params *herego.Params, operation string) (*Response, error) {
	if c.routeAttrs != "" {
		params.Set("routeattributes", c.routeAttrs)
	}

	url, err := herego.BuildURL(c.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	c.logger.Debug().
		Str("operation", operation).
		Msg("requesting route")

	body, err := herego.Get(ctx, c.httpClient, url, c.timeout, operation)
	if err != nil {
		return nil, err
	}

	var envelope hereEnvelope
	if err := herego.DecodeJSON(body, &envelope, operation); err != nil {
		return nil, err
	}

	if envelope.Response == nil {
		return nil, c.errorFromEnvelope(&envelope, operation)
	}

	resp, err := toResponse(envelope.Response)
	if err != nil {
		return nil, &herego.ParseError{Operation: operation, Err: err}
	}

	c.logger.Debug().
		Str("operation", operation).
		Int("route_count", len(resp.Routes)).
		Msg("received routes")

	return resp, nil
}

// errorFromEnvelope maps the routing error payload to a typed error. The
// subtype field is the documented discriminant; message text is never
// inspected.
func (c *Client) errorFromEnvelope(env *hereEnvelope, operation string) error {
	message := env.Details
	if message == "" {
		message = "error occurred on " + operation
	}

	code := env.Subtype
	if code == "" {
		code = env.Type
	}

	apiErr := &herego.Error{
		Operation: operation,
		Code:      code,
		Message:   message,
	}

	switch env.Subtype {
	case "NoRouteFound":
		apiErr.Err = ErrNoRouteFound
	case "InvalidCredentials":
		apiErr.Err = herego.ErrUnauthorized
	case "InvalidInputData":
		apiErr.Err = herego.ErrInvalidRequest
	}

	return apiErr
}

// toResponse converts the wire response to the domain model.
func toResponse(wire *hereResponse) (*Response, error) {
	resp := &Response{
		MetaInfo: MetaInfo{
			Timestamp:        wire.MetaInfo.Timestamp,
			MapVersion:       wire.MetaInfo.MapVersion,
			ModuleVersion:    wire.MetaInfo.ModuleVersion,
			InterfaceVersion: wire.MetaInfo.InterfaceVersion,
		},
		Routes:    make([]Route, 0, len(wire.Route)),
		Language:  wire.Language,
		FetchedAt: time.Now(),
	}

	for i := range wire.Route {
		wr := &wire.Route[i]

		route := Route{
			Mode: Mode{
				Type:        RouteMode(wr.Mode.Type),
				TrafficMode: wr.Mode.TrafficMode,
				Features:    wr.Mode.Feature,
			},
			Summary: Summary{
				Distance:    wr.Summary.Distance,
				BaseTime:    wr.Summary.BaseTime,
				TrafficTime: wr.Summary.TrafficTime,
				TravelTime:  wr.Summary.TravelTime,
				Text:        wr.Summary.Text,
				Flags:       wr.Summary.Flags,
			},
		}

		for _, tm := range wr.Mode.TransportModes {
			route.Mode.TransportModes = append(route.Mode.TransportModes, RouteMode(tm))
		}

		for j := range wr.Waypoint {
			route.Waypoints = append(route.Waypoints, toRouteWaypoint(&wr.Waypoint[j]))
		}

		for j := range wr.Leg {
			wl := &wr.Leg[j]
			leg := Leg{
				Start:      toRouteWaypoint(&wl.Start),
				End:        toRouteWaypoint(&wl.End),
				Length:     wl.Length,
				TravelTime: wl.TravelTime,
			}
			for k := range wl.Maneuver {
				wm := &wl.Maneuver[k]
				leg.Maneuvers = append(leg.Maneuvers, Maneuver{
					ID:          wm.ID,
					Instruction: wm.Instruction,
					Position:    Waypoint{Lat: wm.Position.Latitude, Lon: wm.Position.Longitude},
					Length:      wm.Length,
					TravelTime:  wm.TravelTime,
				})
			}
			route.Legs = append(route.Legs, leg)
		}

		if len(wr.Shape) > 0 {
			shape, err := polyline.ParseShape(wr.Shape)
			if err != nil {
				return nil, fmt.Errorf("parsing route shape: %w", err)
			}
			route.Shape = shape
		}

		resp.Routes = append(resp.Routes, route)
	}

	return resp, nil
}

func toRouteWaypoint(w *hereWaypoint) RouteWaypoint {
	return RouteWaypoint{
		LinkID:           w.LinkID,
		Label:            w.Label,
		MappedRoadName:   w.MappedRoadName,
		Type:             w.Type,
		MappedPosition:   Waypoint{Lat: w.MappedPosition.Latitude, Lon: w.MappedPosition.Longitude},
		OriginalPosition: Waypoint{Lat: w.OriginalPosition.Latitude, Lon: w.OriginalPosition.Longitude},
	}
}

// HERE Routing API response structures.

type hereEnvelope struct {
	Response *hereResponse `json:"response"`
	Type     string        `json:"type"`
	Subtype  string        `json:"subtype"`
	Details  string        `json:"details"`
}

type hereResponse struct {
	MetaInfo hereMetaInfo `json:"metaInfo"`
	Route    []hereRoute  `json:"route"`
	Language string       `json:"language"`
}

type hereMetaInfo struct {
	Timestamp        string `json:"timestamp"`
	MapVersion       string `json:"mapVersion"`
	ModuleVersion    string `json:"moduleVersion"`
	InterfaceVersion string `json:"interfaceVersion"`
}

type hereRoute struct {
	Waypoint []hereWaypoint `json:"waypoint"`
	Mode     hereMode       `json:"mode"`
	Shape    []string       `json:"shape"`
	Leg      []hereLeg      `json:"leg"`
	Summary  hereSummary    `json:"summary"`
}

type herePosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type hereWaypoint struct {
	LinkID           string       `json:"linkId"`
	Label            string       `json:"label"`
	MappedRoadName   string       `json:"mappedRoadName"`
	Type             string       `json:"type"`
	MappedPosition   herePosition `json:"mappedPosition"`
	OriginalPosition herePosition `json:"originalPosition"`
}

type hereMode struct {
	Type           string   `json:"type"`
	TransportModes []string `json:"transportModes"`
	TrafficMode    string   `json:"trafficMode"`
	Feature        []string `json:"feature"`
}

type hereLeg struct {
	Start      hereWaypoint   `json:"start"`
	End        hereWaypoint   `json:"end"`
	Length     int            `json:"length"`
	TravelTime int            `json:"travelTime"`
	Maneuver   []hereManeuver `json:"maneuver"`
}

type hereManeuver struct {
	ID          string       `json:"id"`
	Instruction string       `json:"instruction"`
	Position    herePosition `json:"position"`
	Length      int          `json:"length"`
	TravelTime  int          `json:"travelTime"`
}

type hereSummary struct {
	Distance    int      `json:"distance"`
	BaseTime    int      `json:"baseTime"`
	TrafficTime int      `json:"trafficTime"`
	TravelTime  int      `json:"travelTime"`
	Text        string   `json:"text"`
	Flags       []string `json:"flags"`
}
