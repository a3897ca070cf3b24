// Package routing provides a client for the HERE Routing API.
package routing

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/herego/herego/pkg/polyline"
)

// ErrNoRouteFound indicates no valid route exists between the given points.
var ErrNoRouteFound = errors.New("no route found between the given points")

// RouteMode selects transport type, routing preference, or traffic handling.
// A sequence of modes is joined with ";" into the mode parameter.
type RouteMode string

const (
	// ModeFastest prefers the route with the shortest travel time.
	ModeFastest RouteMode = "fastest"
	// ModeShortest prefers the route with the shortest distance.
	ModeShortest RouteMode = "shortest"
	// ModeBalanced trades off travel time against distance.
	ModeBalanced RouteMode = "balanced"
	// ModeCar routes for a passenger car.
	ModeCar RouteMode = "car"
	// ModePedestrian routes on foot.
	ModePedestrian RouteMode = "pedestrian"
	// ModePublicTransport routes via public transit.
	ModePublicTransport RouteMode = "publicTransport"
	// ModeTruck routes for a truck, honoring truck restrictions.
	ModeTruck RouteMode = "truck"
	// ModeTrafficDefault lets the service decide how to use traffic data.
	ModeTrafficDefault RouteMode = "traffic:default"
	// ModeTrafficEnabled routes using current traffic conditions.
	ModeTrafficEnabled RouteMode = "traffic:enabled"
	// ModeTrafficDisabled ignores traffic conditions.
	ModeTrafficDisabled RouteMode = "traffic:disabled"
)

// Default mode sets per operation, used when the caller passes none.
// Treated as read-only; operations never modify them.
var (
	defaultCarModes        = []RouteMode{ModeCar, ModeFastest}
	defaultPedestrianModes = []RouteMode{ModePedestrian, ModeFastest}
	defaultTransitModes    = []RouteMode{ModePublicTransport, ModeFastest}
	defaultTruckModes      = []RouteMode{ModeTruck, ModeFastest}
)

// joinModes renders modes as the wire form: values separated by ";" with no
// leading or trailing separator.
func joinModes(modes []RouteMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ";")
}

// modesOrDefault returns modes unless empty, in which case defaults apply.
func modesOrDefault(modes, defaults []RouteMode) []RouteMode {
	if len(modes) == 0 {
		return defaults
	}
	return modes
}

// Waypoint is a geographic coordinate pair marking a route endpoint or an
// intermediate stop.
type Waypoint struct {
	Lat float64
	Lon float64
}

// Format renders the waypoint as "<lat>,<lon>" with no whitespace, the form
// the routing service expects in waypoint parameters.
func (w Waypoint) Format() string {
	return strconv.FormatFloat(w.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(w.Lon, 'f', -1, 64)
}

// Response is the parsed result of a successful routing call.
type Response struct {
	MetaInfo  MetaInfo
	Routes    []Route
	Language  string
	FetchedAt time.Time
}

// MetaInfo describes the service and map versions that produced a response.
type MetaInfo struct {
	Timestamp        string
	MapVersion       string
	ModuleVersion    string
	InterfaceVersion string
}

// Route is a single route alternative.
type Route struct {
	Waypoints []RouteWaypoint
	Mode      Mode
	// Shape holds the route geometry when the client is configured to
	// request it; empty otherwise.
	Shape   []polyline.Coordinate
	Legs    []Leg
	Summary Summary
}

// ShapeLength returns the haversine length of the route shape in meters,
// or 0 when no shape was requested.
func (r *Route) ShapeLength() float64 {
	return polyline.Length(r.Shape)
}

// RouteWaypoint is a waypoint as matched to the road network by the service.
type RouteWaypoint struct {
	LinkID           string
	Label            string
	MappedRoadName   string
	Type             string
	MappedPosition   Waypoint
	OriginalPosition Waypoint
}

// Mode echoes the routing mode the service applied.
type Mode struct {
	Type           RouteMode
	TransportModes []RouteMode
	TrafficMode    string
	Features       []string
}

// Leg is the part of a route between two consecutive waypoints.
type Leg struct {
	Start      RouteWaypoint
	End        RouteWaypoint
	Length     int // meters
	TravelTime int // seconds
	Maneuvers  []Maneuver
}

// Maneuver is a single turn-by-turn instruction within a leg.
type Maneuver struct {
	ID          string
	Instruction string
	Position    Waypoint
	Length      int // meters
	TravelTime  int // seconds
}

// Summary aggregates distance and time for a route.
type Summary struct {
	Distance    int // meters
	BaseTime    int // seconds, without traffic
	TrafficTime int // seconds, with traffic
	TravelTime  int // seconds, as routed
	Text        string
	Flags       []string
}
