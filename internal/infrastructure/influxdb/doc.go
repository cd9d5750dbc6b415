// Package influxdb records instrument telemetry to InfluxDB v2.
//
// The bridge writes scaled phase readings and run-state metrics here so
// long acquisition runs can be correlated with chopper behaviour after
// the fact. Writes are batched and non-blocking; a write failure never
// stalls a move or a command.
//
// Telemetry is optional and disabled by default:
//
//	influxdb:
//	  enabled: true
//	  url: "http://localhost:8086"
//	  org: "lab"
//	  bucket: "instruments"
//
// The token should come from CHOPPERD_INFLUXDB_TOKEN.
package influxdb
