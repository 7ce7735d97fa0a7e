package sink

import (
	"context"
	"log/slog"
)

// LogSink writes one structured log line per envelope.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink that logs through logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Publish(ctx context.Context, env Envelope) error {
	obs := env.Observation
	s.logger.InfoContext(ctx, "observation submitted",
		"id", env.ID,
		"submitted_at", env.SubmittedAt,
		"location", obs.LocationName,
		"latitude", obs.Latitude,
		"longitude", obs.Longitude,
		"temperature", obs.Temperature,
		"humidity", obs.Humidity,
		"wind_speed", obs.WindSpeed,
		"cloud_cover", obs.CloudCover,
		"precipitation", obs.Precipitation,
		"wind_direction", obs.WindDirection,
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
