package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herego/herego/pkg/polyline"
	"github.com/herego/herego/weather"
)

// products maps CLI names to weather products.
var products = map[string]weather.Product{
	"observation":           weather.ProductObservation,
	"forecast_7days":        weather.ProductForecast7Days,
	"forecast_7days_simple": weather.ProductForecast7DaysSimple,
	"forecast_hourly":       weather.ProductForecastHourly,
	"forecast_astronomy":    weather.ProductForecastAstronomy,
	"alerts":                weather.ProductAlerts,
	"nws_alerts":            weather.ProductNWSAlerts,
}

func init() {
	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "Weather reports from the HERE Destination Weather API",
	}

	var (
		productFlag string
		nameFlag    string
		zipFlag     string
		latFlag     float64
		lonFlag     float64
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch a weather report for a place",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			product, ok := products[productFlag]
			if !ok {
				return fmt.Errorf("unknown product %q", productFlag)
			}

			client := newWeatherClient()
			ctx := cmd.Context()

			var (
				report *weather.Report
				err    error
			)
			switch {
			case nameFlag != "":
				report, err = client.ReportByLocationName(ctx, product, nameFlag)
			case zipFlag != "":
				report, err = client.ReportByZipCode(ctx, product, zipFlag)
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon"):
				report, err = client.ReportByCoordinates(ctx, product, latFlag, lonFlag)
			default:
				return fmt.Errorf("one of --name, --zip or --lat/--lon is required")
			}
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
	reportCmd.Flags().StringVar(&productFlag, "product", "observation", "weather product to request")
	reportCmd.Flags().StringVar(&nameFlag, "name", "", "location name, for example Berlin")
	reportCmd.Flags().StringVar(&zipFlag, "zip", "", "US ZIP code")
	reportCmd.Flags().Float64Var(&latFlag, "lat", 0, "latitude")
	reportCmd.Flags().Float64Var(&lonFlag, "lon", 0, "longitude")
	weatherCmd.AddCommand(reportCmd)

	var (
		fromFlag     string
		toFlag       string
		intervalFlag float64
	)

	alongRouteCmd := &cobra.Command{
		Use:   "along-route",
		Short: "Sample current conditions along a car route",
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

			ctx := cmd.Context()
			resp, err := newRoutingClient(true).CarRoute(ctx, origin, dest)
			if err != nil {
				return err
			}
			if len(resp.Routes) == 0 || len(resp.Routes[0].Shape) == 0 {
				return fmt.Errorf("route has no shape to sample")
			}

			points := polyline.Sample(resp.Routes[0].Shape, intervalFlag*1000)
			client := newWeatherClient()
			for _, p := range points {
				report, err := client.ReportByCoordinates(ctx, weather.ProductObservation, p.Lat, p.Lon)
				if err != nil {
					return err
				}
				printSampledObservation(p, report)
			}
			return nil
		},
	}
	alongRouteCmd.Flags().StringVar(&fromFlag, "from", "", "start waypoint as lat,lon (required)")
	alongRouteCmd.Flags().StringVar(&toFlag, "to", "", "destination waypoint as lat,lon (required)")
	alongRouteCmd.Flags().Float64Var(&intervalFlag, "interval", 10, "sampling interval along the route in km")
	_ = alongRouteCmd.MarkFlagRequired("from")
	_ = alongRouteCmd.MarkFlagRequired("to")
	weatherCmd.AddCommand(alongRouteCmd)

	rootCmd.AddCommand(weatherCmd)
}

func newWeatherClient() *weather.Client {
	return weather.NewClient(weather.ClientConfig{
		Credentials: appCreds,
		BaseURL:     weatherURLFlag,
		Logger:      appLogger,
	})
}

func printReport(report *weather.Report) error {
	if jsonFlag {
		return printJSON(report)
	}

	switch report.Product {
	case weather.ProductObservation:
		for _, obs := range report.Observations {
			fmt.Printf("%s (%s): %s, %.1fC, wind %.1f km/h\n",
				obs.City, obs.UTCTime, obs.Description, obs.Temperature, obs.WindSpeed)
		}
	case weather.ProductForecast7Days, weather.ProductForecast7DaysSimple:
		for _, f := range report.Forecasts {
			fmt.Printf("%s: %s, high %.1fC low %.1fC, precipitation %.0f%%\n",
				f.Weekday, f.Description, f.HighTemperature, f.LowTemperature, f.PrecipitationProbability)
		}
	case weather.ProductForecastHourly:
		for _, f := range report.Forecasts {
			fmt.Printf("%s: %s, %.1fC\n", f.UTCTime, f.Description, f.Temperature)
		}
	case weather.ProductForecastAstronomy:
		for _, a := range report.Astronomy {
			fmt.Printf("%s: sunrise %s, sunset %s, %s\n", a.UTCTime, a.Sunrise, a.Sunset, a.MoonPhaseDesc)
		}
	case weather.ProductAlerts:
		if len(report.Alerts) == 0 {
			fmt.Println("no active alerts")
			return nil
		}
		for _, a := range report.Alerts {
			fmt.Printf("alert %d: %s\n", a.Type, a.Description)
		}
	case weather.ProductNWSAlerts:
		fmt.Printf("%d watches, %d warnings\n", len(report.NWSWatches), len(report.NWSWarnings))
		for _, w := range report.NWSWatches {
			fmt.Printf("watch: %s (%s, %s)\n", w.Description, w.County, w.State)
		}
		for _, w := range report.NWSWarnings {
			fmt.Printf("warning: %s (%s, %s)\n", w.Description, w.County, w.State)
		}
	}
	return nil
}

func printSampledObservation(p polyline.Coordinate, report *weather.Report) {
	if len(report.Observations) == 0 {
		fmt.Printf("%.5f,%.5f: no observation available\n", p.Lat, p.Lon)
		return
	}
	obs := report.Observations[0]
	fmt.Printf("%.5f,%.5f: %s, %.1fC\n", p.Lat, p.Lon, obs.Description, obs.Temperature)
}
