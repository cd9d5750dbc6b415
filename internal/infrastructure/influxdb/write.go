package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePhaseReading records a scaled phase reading together with the
// current move target.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Example:
//
//	client.WritePhaseReading("chopper-01", 90.0, 90.0)
func (c *Client) WritePhaseReading(instrumentID string, phase, target float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"chopper_phase",
		map[string]string{
			"instrument_id": instrumentID,
		},
		map[string]interface{}{
			"phase_deg":  phase,
			"target_deg": target,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteInstrumentMetric records a single named instrument measurement,
// such as "internal_freq_hz" or "run_state".
func (c *Client) WriteInstrumentMetric(instrumentID string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"chopper_metrics",
		map[string]string{
			"instrument_id": instrumentID,
			"measurement":   measurement,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// Flush forces any batched points to be written immediately.
//
// Useful before shutdown or in tests. Normal operation relies on the
// configured flush interval.
func (c *Client) Flush() {
	if c.writeAPI != nil {
		c.writeAPI.Flush()
	}
}
