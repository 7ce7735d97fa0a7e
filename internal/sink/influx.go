package sink

import (
	"context"
	"errors"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/goliatone/go-fireform/pkg/observation"
)

// Measurement is the InfluxDB measurement observations are written to.
const Measurement = "environmental_observation"

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// InfluxSink writes each envelope as a single point tagged by location.
type InfluxSink struct {
	client influxdb2.Client
	writer pointWriter
}

// NewInfluxSink connects to url with token and writes into org/bucket.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(org, bucket),
	}
}

func (s *InfluxSink) Name() string { return "influx" }

func (s *InfluxSink) Publish(ctx context.Context, env Envelope) error {
	if err := s.writer.WritePoint(ctx, toPoint(env)); err != nil {
		return fmt.Errorf("influx: write %s: %w", env.ID, err)
	}
	return nil
}

func (s *InfluxSink) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

// Ping reports whether the server answers.
func (s *InfluxSink) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	ok, err := s.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("influx: ping: %w", err)
	}
	if !ok {
		return errors.New("influx: ping: server not ready")
	}
	return nil
}

func toPoint(env Envelope) *write.Point {
	fields := make(map[string]interface{})
	for _, f := range observation.Fields() {
		if v, ok := observation.Get(env.Observation, f).(float64); ok {
			fields[string(f)] = v
		}
	}
	fields["id"] = env.ID
	return influxdb2.NewPoint(
		Measurement,
		map[string]string{"location": env.Observation.LocationName},
		fields,
		env.SubmittedAt,
	)
}
