// Package transport provides the instrumented HTTP client used for outbound
// calls to the HERE services.
package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/herego/herego/internal/transport"

// ClientConfig holds configuration for the instrumented HTTP client.
type ClientConfig struct {
	// Name identifies the target service in logs, metrics and spans.
	Name string

	// Timeout is the request timeout for individual HTTP calls.
	// Default: 10 seconds
	Timeout time.Duration

	// Logger for request logging.
	Logger zerolog.Logger
}

// DefaultClientConfig returns sensible defaults for the instrumented client.
func DefaultClientConfig(name string) ClientConfig {
	return ClientConfig{
		Name:    name,
		Timeout: 10 * time.Second,
	}
}

// Client is an HTTP client that traces, measures and logs every request.
// It performs exactly one attempt per call; callers own any retry policy.
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	tracer     trace.Tracer
	duration   metric.Float64Histogram
	total      metric.Int64Counter
}

// NewClient creates a new instrumented HTTP client. Until a metrics or
// trace provider is registered the instruments are no-ops.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"provider.request.duration",
		metric.WithDescription("Duration of provider requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}

	total, err := meter.Int64Counter(
		"provider.request.total",
		metric.WithDescription("Total number of provider requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		tracer:     otel.Tracer(instrumentationName),
		duration:   duration,
		total:      total,
	}
}

// Do executes a single HTTP request with tracing, metrics and request
// logging. The request is tagged with an X-Request-Id header unless the
// caller already set one.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = "req_" + uuid.New().String()[:22]
	}

	spanName := fmt.Sprintf("%s %s", req.Method, req.URL.Host)
	ctx, span := c.tracer.Start(req.Context(), spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("url.path", req.URL.Path),
			attribute.String("provider.name", c.config.Name),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	req = req.Clone(ctx)
	req.Header.Set("X-Request-Id", requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	attrs := []attribute.KeyValue{
		attribute.String("provider.name", c.config.Name),
		attribute.String("http.request.method", req.Method),
	}

	logEvent := c.config.Logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", elapsed)

	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logEvent.Err(err).Msg("request failed")
	} else {
		attrs = append(attrs, attribute.String("http.status_code", strconv.Itoa(resp.StatusCode)))
		if resp.StatusCode >= 400 {
			attrs = append(attrs, attribute.Bool("error", true))
		}
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		if resp.StatusCode >= 500 {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}
		logEvent.Int("status", resp.StatusCode).Msg("request completed")
	}

	c.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
	c.total.Add(ctx, 1, metric.WithAttributes(attrs...))

	return resp, err
}
