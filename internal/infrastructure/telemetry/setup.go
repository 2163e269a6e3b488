package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopadmin/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Telemetry bundles the providers started from configuration
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	cfg      config.TelemetryConfig
}

// Setup starts every provider the configuration enables
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	base := Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}
	t := &Telemetry{cfg: cfg}

	var err error
	if t.Tracer, err = NewTracerProvider(ctx, base, logger); err != nil {
		return nil, err
	}
	if t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:           cfg.Enabled && cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ExportInterval:    cfg.MetricsInterval,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	logsCfg := base
	logsCfg.Enabled = cfg.Enabled && cfg.LogsEnabled
	if t.Logs, err = NewLoggerProvider(ctx, logsCfg, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	if t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.PyroscopeServer,
		ApplicationName: cfg.ServiceName,
	}, logger); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}
	if t.Profiler.IsEnabled() {
		t.Tracer.EnableSpanProfiles()
	}
	return t, nil
}

// DBTracing returns the gorm tracing settings
func (t *Telemetry) DBTracing(dbName string, slowQuery time.Duration) DBTracingConfig {
	return DBTracingConfig{
		Enabled:         t.cfg.Enabled && t.cfg.DBTraceEnabled,
		LogFullSQL:      t.cfg.DBLogFullSQL,
		SlowQueryThresh: slowQuery,
		DBName:          dbName,
	}
}

// ShopMeter returns the meter shop instruments register on
func (t *Telemetry) ShopMeter() metric.Meter {
	return t.Meter.Meter(MeterName)
}

// BridgeLogger tees base with the OTEL log export core
func (t *Telemetry) BridgeLogger(base *zap.Logger, level zapcore.Level) *zap.Logger {
	if !t.Logs.IsEnabled() {
		return base
	}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, t.Logs.ZapCore(t.cfg.ServiceName, level))
	}))
}

// Shutdown stops providers that were started, flushing their buffers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
