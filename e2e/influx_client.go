// Package e2e exercises the full run pipeline against containerized
// infrastructure.
package e2e

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient wraps the official InfluxDB v2 client with the few query
// helpers the suite needs to verify what the metrics sink wrote.
type InfluxClient struct {
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient assumes the server is already onboarded with the given
// org, bucket and token.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{
		bucket: bucket,
		client: c,
		query:  c.QueryAPI(org),
	}
}

// CountSince returns how many points of the measurement landed in the
// bucket within the trailing window.
func (c *InfluxClient) CountSince(ctx context.Context, measurement string, window time.Duration) (int, error) {
	flux := fmt.Sprintf(
		`from(bucket:%q) |> range(start: -%ds) |> filter(fn: (r) => r._measurement == %q)`,
		c.bucket, int(window.Seconds()), measurement)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer func() { _ = res.Close() }()
	count := 0
	for res.Next() {
		count++
	}
	return count, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
