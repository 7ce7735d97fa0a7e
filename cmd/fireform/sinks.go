package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-fireform/internal/config"
	"github.com/goliatone/go-fireform/internal/sink"
	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

// buildSinks opens every sink enabled in cfg. The log sink is always on. The
// SQLite sink is also returned on its own so callers can read history.
func buildSinks(cfg *config.Config, logger *slog.Logger) ([]sink.Sink, *sink.SQLiteSink, error) {
	sinks := []sink.Sink{sink.NewLogSink(logger)}

	if cfg.KafkaEnabled {
		sinks = append(sinks, sink.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic))
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, sink.NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
		logger.Info("influx sink enabled", "url", cfg.InfluxURL, "bucket", cfg.InfluxBucket)
	}

	var history *sink.SQLiteSink
	if cfg.SQLiteEnabled {
		s, err := sink.NewSQLiteSink(cfg.SQLitePath)
		if err != nil {
			for _, opened := range sinks {
				opened.Close()
			}
			return nil, nil, err
		}
		sinks = append(sinks, s)
		history = s
		logger.Info("sqlite sink enabled", "path", cfg.SQLitePath)
	}
	return sinks, history, nil
}

// schemaOptions captions the form from dir, or from the embedded schema when
// dir is empty.
func schemaOptions(dir, formID string) (*uischema.Store, []form.Option, error) {
	var (
		store *uischema.Store
		err   error
	)
	if dir == "" {
		store, err = uischema.LoadDefault()
	} else {
		store, err = uischema.LoadFS(os.DirFS(dir))
	}
	if err != nil {
		return nil, nil, err
	}
	if formID == "" {
		formID = uischema.DefaultFormID
	}
	opts, err := uischema.NewDecorator(store).Options(formID)
	if err != nil {
		return nil, nil, fmt.Errorf("ui schema %s: %w", dir, err)
	}
	return store, opts, nil
}
