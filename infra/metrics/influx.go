package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/dongqi-wu/reisego/core/metrics"
	"github.com/dongqi-wu/reisego/infra/logger"
)

const writeTimeout = 10 * time.Second

// InfluxSink writes run events to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run outcome as one point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	p := influxdb2.NewPoint("simulation_run",
		map[string]string{
			"scenario_id": ev.ScenarioID,
			"solver":      ev.Solver,
			"status":      ev.Status,
		},
		map[string]interface{}{
			"runtime_seconds": ev.Runtime.Seconds(),
		},
		ev.Time)
	return s.write(p)
}

// RecordStage writes one stage duration point.
func (s *InfluxSink) RecordStage(ev coremetrics.StageEvent) error {
	p := influxdb2.NewPoint("orchestration_stage",
		map[string]string{
			"scenario_id": ev.ScenarioID,
			"stage":       ev.Stage,
		},
		map[string]interface{}{
			"duration_seconds": ev.Seconds,
		},
		ev.Time)
	return s.write(p)
}

// RecordInterval writes one engine interval point.
func (s *InfluxSink) RecordInterval(ev coremetrics.IntervalEvent) error {
	p := influxdb2.NewPoint("engine_interval",
		map[string]string{
			"scenario_id": ev.ScenarioID,
			"solver":      ev.Solver,
			"interval":    strconv.Itoa(ev.Interval),
		},
		map[string]interface{}{
			"duration_seconds": ev.Seconds,
		},
		ev.Time)
	return s.write(p)
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
