package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/herego/herego/pkg/polyline"
	"github.com/herego/herego/routing"
)

// shapeAttributes asks the service to include route geometry.
const shapeAttributes = "waypoints,summary,legs,shape"

func init() {
	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Route calculations against the HERE Routing API",
	}

	var (
		fromFlag          string
		toFlag            string
		viaFlag           string
		shapeFlag         bool
		combineChangeFlag bool
	)

	addEndpointFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&fromFlag, "from", "", "start waypoint as lat,lon (required)")
		cmd.Flags().StringVar(&toFlag, "to", "", "destination waypoint as lat,lon (required)")
		_ = cmd.MarkFlagRequired("from")
		_ = cmd.MarkFlagRequired("to")
	}

	carCmd := &cobra.Command{
		Use:   "car",
		Short: "Calculate a car route",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newRoutingClient(shapeFlag)
			return runRoute(cmd.Context(), client.CarRoute, fromFlag, toFlag, shapeFlag)
		},
	}
	addEndpointFlags(carCmd)
	carCmd.Flags().BoolVar(&shapeFlag, "shape", false, "print the route geometry as an encoded polyline")

	pedestrianCmd := &cobra.Command{
		Use:   "pedestrian",
		Short: "Calculate a walking route",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newRoutingClient(shapeFlag)
			return runRoute(cmd.Context(), client.PedestrianRoute, fromFlag, toFlag, shapeFlag)
		},
	}
	addEndpointFlags(pedestrianCmd)
	pedestrianCmd.Flags().BoolVar(&shapeFlag, "shape", false, "print the route geometry as an encoded polyline")

	truckCmd := &cobra.Command{
		Use:   "truck",
		Short: "Calculate a truck route",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newRoutingClient(shapeFlag)
			return runRoute(cmd.Context(), client.TruckRoute, fromFlag, toFlag, shapeFlag)
		},
	}
	addEndpointFlags(truckCmd)
	truckCmd.Flags().BoolVar(&shapeFlag, "shape", false, "print the route geometry as an encoded polyline")

	motorwayCmd := &cobra.Command{
		Use:   "motorway",
		Short: "Calculate a car route from a location to a street near a motorway",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newRoutingClient(shapeFlag)
			return runRoute(cmd.Context(), client.LocationNearMotorway, fromFlag, toFlag, shapeFlag)
		},
	}
	addEndpointFlags(motorwayCmd)
	motorwayCmd.Flags().BoolVar(&shapeFlag, "shape", false, "print the route geometry as an encoded polyline")

	transitCmd := &cobra.Command{
		Use:   "transit",
		Short: "Calculate a public transport route",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			origin, err := parseWaypoint(fromFlag)
			if err != nil {
				return err
			}
			dest, err := parseWaypoint(toFlag)
			if err != nil {
				return err
			}

			client := newRoutingClient(false)
			resp, err := client.PublicTransport(cmd.Context(), origin, dest, combineChangeFlag)
			if err != nil {
				return err
			}
			return printRoutes(resp, false)
		},
	}
	addEndpointFlags(transitCmd)
	transitCmd.Flags().BoolVar(&combineChangeFlag, "combine-change", false, "merge walking segments around line changes")

	viaCmd := &cobra.Command{
		Use:   "via",
		Short: "Calculate a car route through an intermediate waypoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			origin, err := parseWaypoint(fromFlag)
			if err != nil {
				return err
			}
			stop, err := parseWaypoint(viaFlag)
			if err != nil {
				return err
			}
			dest, err := parseWaypoint(toFlag)
			if err != nil {
				return err
			}

			client := newRoutingClient(false)
			resp, err := client.IntermediateRoute(cmd.Context(), origin, stop, dest)
			if err != nil {
				return err
			}
			return printRoutes(resp, false)
		},
	}
	addEndpointFlags(viaCmd)
	viaCmd.Flags().StringVar(&viaFlag, "via", "", "intermediate waypoint as lat,lon (required)")
	_ = viaCmd.MarkFlagRequired("via")

	routeCmd.AddCommand(carCmd, pedestrianCmd, truckCmd, motorwayCmd, transitCmd, viaCmd)
	rootCmd.AddCommand(routeCmd)
}

func newRoutingClient(withShape bool) *routing.Client {
	cfg := routing.ClientConfig{
		Credentials: appCreds,
		BaseURL:     routingURLFlag,
		Logger:      appLogger,
	}
	if withShape {
		cfg.RouteAttributes = shapeAttributes
	}
	return routing.NewClient(cfg)
}

// runRoute parses the endpoint flags, performs the calculation and prints
// the result. All two-waypoint operations share this path.
func runRoute(ctx context.Context, calc func(context.Context, routing.Waypoint, routing.Waypoint, ...routing.RouteMode) (*routing.Response, error), from, to string, withShape bool) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	origin, err := parseWaypoint(from)
	if err != nil {
		return err
	}
	dest, err := parseWaypoint(to)
	if err != nil {
		return err
	}

	resp, err := calc(ctx, origin, dest)
	if err != nil {
		return err
	}
	return printRoutes(resp, withShape)
}

// parseWaypoint reads a "lat,lon" flag value.
func parseWaypoint(s string) (routing.Waypoint, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return routing.Waypoint{}, fmt.Errorf("waypoint %q must be lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return routing.Waypoint{}, fmt.Errorf("waypoint %q has a bad latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return routing.Waypoint{}, fmt.Errorf("waypoint %q has a bad longitude: %w", s, err)
	}
	return routing.Waypoint{Lat: lat, Lon: lon}, nil
}

func printRoutes(resp *routing.Response, withShape bool) error {
	if jsonFlag {
		return printJSON(resp)
	}

	if len(resp.Routes) == 0 {
		fmt.Println("no routes found")
		return nil
	}

	for i, route := range resp.Routes {
		fmt.Printf("route %d: %s\n", i+1, route.Summary.Text)
		fmt.Printf("  distance: %.1f km\n", float64(route.Summary.Distance)/1000)
		fmt.Printf("  travel time: %s\n", time.Duration(route.Summary.TravelTime)*time.Second)
		for _, leg := range route.Legs {
			for _, m := range leg.Maneuvers {
				fmt.Printf("  - %s\n", m.Instruction)
			}
		}
		if withShape && len(route.Shape) > 0 {
			fmt.Printf("  shape: %s\n", polyline.Encode(route.Shape))
		}
	}
	return nil
}
