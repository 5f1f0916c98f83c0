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

	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/infra/logger"
)

// InfluxSink writes outreach and matching events to an InfluxDB instance
// using the official client.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.OutreachSink {
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

// RecordOutreachResult writes per-recipient outcomes as line protocol events.
func (s *InfluxSink) RecordOutreachResult(res []coremetrics.OutreachResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range res {
		p := write.NewPointWithMeasurement("outreach_event").
			AddTag("carrier_id", strconv.FormatInt(r.CarrierID, 10)).
			AddTag("channel", r.Channel.String()).
			AddTag("status", r.Status).
			AddTag("dry_run", strconv.FormatBool(r.DryRun)).
			AddTag("component", "outreach_dispatcher").
			AddField("message_id", r.MessageID).
			AddField("load_id", r.LoadID).
			AddField("error", r.Error).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordMatchPass writes one scoring pass as a line protocol event.
func (s *InfluxSink) RecordMatchPass(pass coremetrics.MatchPass) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("match_pass").
		AddTag("load_id", strconv.FormatInt(pass.LoadID, 10)).
		AddTag("component", "matching_engine").
		AddField("pool_size", pass.PoolSize).
		AddField("candidates", pass.Candidates).
		AddField("top_score", pass.TopScore).
		AddField("mean_score", pass.MeanScore).
		SetTime(pass.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
