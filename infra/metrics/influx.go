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

	coremetrics "github.com/skyhaul/dronesim/core/metrics"
	"github.com/skyhaul/dronesim/infra/logger"
)

// InfluxSink writes simulation measurements to an InfluxDB instance using
// the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runID    string
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint. The runID tags every point of a run so runs can be compared.
func NewInfluxSink(url, token, org, bucket, runID string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		runID:    runID,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket, runID string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket, runID)
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

// RecordTick writes the fleet snapshot as one point.
func (s *InfluxSink) RecordTick(st coremetrics.TickStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sim_tick").
		AddTag("run_id", s.runID).
		AddTag("tick", strconv.Itoa(st.Tick)).
		AddField("idle", st.Idle).
		AddField("traveling", st.Traveling).
		AddField("loading", st.Loading).
		AddField("unloading", st.Unloading).
		AddField("completed", st.Completed).
		AddField("score", st.Score).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordCompletion writes one customer completion.
func (s *InfluxSink) RecordCompletion(c coremetrics.CompletionStat) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("order_completion").
		AddTag("run_id", s.runID).
		AddTag("customer", strconv.Itoa(c.Customer)).
		AddField("tick", c.Tick).
		AddField("points", c.Points).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRun writes the run summary.
func (s *InfluxSink) RecordRun(r coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sim_run").
		AddTag("run_id", s.runID).
		AddTag("strategy", r.Strategy).
		AddField("score", r.Score).
		AddField("completed", r.Completed).
		AddField("customers", r.Customers).
		AddField("ticks", r.Ticks).
		AddField("commands", r.Commands).
		AddField("duration_ms", r.Duration.Milliseconds()).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
