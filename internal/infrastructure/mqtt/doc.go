// Package mqtt provides the MQTT client used by the instrument bridge.
//
// It wraps eclipse/paho.mqtt.golang with:
//
//   - Connection management and automatic reconnection with backoff
//   - Subscription tracking and restoration after reconnect
//   - Last Will and Testament on chopperd/system/status for offline detection
//   - Panic recovery around message handlers
//   - Topic builders for the chopperd topic scheme
//
// # Topic scheme
//
//	chopperd/command/{instrument_id}   host -> bridge commands (JSON)
//	chopperd/ack/{instrument_id}       bridge -> host command results
//	chopperd/state/{instrument_id}     retained instrument state
//	chopperd/settings/{instrument_id}  retained settings table + visibility
//	chopperd/health/{instrument_id}    bridge health
//	chopperd/system/status             daemon online/offline (retained, LWT)
package mqtt
