package crewmatch

import (
	"math/rand"
	"net/http"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/crewmatch/crewmatch/model"
	"github.com/crewmatch/crewmatch/service/event"
	"github.com/crewmatch/crewmatch/service/messaging"
	"github.com/crewmatch/crewmatch/tracing"
)

// Option customises the Service being built by New.
type Option func(s *Service)

// WithConfig replaces the default configuration wholesale.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithBaseURL sets the remote analysis/allocation service base URL.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) { s.config.Gateway.BaseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for all outbound calls,
// e.g. an instrumented or test client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.httpClient = client }
}

// WithQueue sets the change-event queue; defaults to the in-memory queue.
func WithQueue(queue messaging.Queue[event.Event[model.Change]]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithPalette sets the task/executor colors and the randomness source used
// to pick them. A nil random keeps the package default.
func WithPalette(colors []string, random *rand.Rand) Option {
	return func(s *Service) {
		s.paletteColors = colors
		s.paletteRandom = random
	}
}

// WithProjectDescription seeds the shared context sent with every task
// analysis request.
func WithProjectDescription(text string) Option {
	return func(s *Service) { s.config.ProjectDescription = text }
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. The function is safe to call multiple times – the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin. The function is safe to
// call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
