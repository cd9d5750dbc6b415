// Package config loads and validates chopperd configuration.
//
// Configuration comes from three layers, later layers overriding earlier ones:
//
//  1. Hardcoded defaults (sim driver, local broker, JSON logging)
//  2. A YAML file (configs/config.yaml by default)
//  3. CHOPPERD_* environment variables for deployment-specific values
//
// # Example
//
//	instrument:
//	  id: "chopper-01"
//	  driver: "sim"
//	  port: "/dev/ttyUSB0"
//	actuator:
//	  units: "deg"
//	  bounds:
//	    enabled: true
//	    min: -180.0
//	    max: 180.0
//	mqtt:
//	  broker:
//	    host: "localhost"
//	    port: 1883
//
// Secrets (MQTT password, InfluxDB token) should be supplied via environment
// variables rather than committed to the config file.
package config
