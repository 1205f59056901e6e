package observability

import (
	"github.com/smallbiznis/scootfleet/internal/observability/logger"
	"github.com/smallbiznis/scootfleet/internal/observability/metrics"
	"github.com/smallbiznis/scootfleet/internal/observability/tracing"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(LoadConfig),
	loggingOptions,
	tracingOptions,
	metricsOptions,
	fx.Invoke(announce),
)

var loggingOptions = fx.Provide(provideLoggerConfig, logger.New)

var tracingOptions = fx.Provide(provideTracingConfig, tracing.NewProvider)

// rental engine counters and the HTTP histograms share one exporter config
var metricsOptions = fx.Provide(
	provideMetricsConfig,
	metrics.NewProvider,
	metrics.New,
	metrics.NewHTTPMetrics,
)

// announce forces the tracer and meter providers to build at startup and logs what is exported.
func announce(cfg Config, log *zap.Logger, _ trace.TracerProvider, _ metric.MeterProvider) {
	log.Info("observability configured",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("log_format", cfg.LogFormat),
		zap.Bool("otel_enabled", cfg.OtelEnabled),
		zap.String("otel_protocol", cfg.OtelExporterProtocol),
		zap.Float64("trace_sampling_ratio", samplingRatio(cfg)),
	)
}

func provideLoggerConfig(cfg Config) logger.Config {
	debug := cfg.Debug()
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		Debug:               debug,
		IncludeCaller:       true,
		IncludeStackOnError: debug,
	}
}

func provideTracingConfig(cfg Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.OtelEnabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.Version,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		SamplingRatio:    samplingRatio(cfg),
	}
}

// samplingRatio keeps every rental trace in dev environments.
func samplingRatio(cfg Config) float64 {
	if isDevEnv(cfg.Environment) {
		return 1
	}
	return cfg.OtelSamplingRatio
}

func provideMetricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.OtelEnabled,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
	}
}
