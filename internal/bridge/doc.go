// Package bridge exposes the actuator over MQTT.
//
// One bridge serves one instrument. The message flow:
//
//	chopperd/command/{id}   <- commands in (move_abs, move_rel, home,
//	                           stop, set, read)
//	chopperd/ack/{id}       -> one acknowledgment per command
//	chopperd/state/{id}     -> retained position/connectivity document
//	chopperd/settings/{id}  -> retained settings table snapshot
//	chopperd/health/{id}    -> poll-loop health heartbeat
//
// State and settings are retained so a host connecting mid-session
// immediately sees the current picture without issuing a read.
package bridge
