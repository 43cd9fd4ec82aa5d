// Package messaging provides a broker-agnostic API for publishing events.
//
// Business code depends on Publisher; the broker (NATS, Kafka, or the log
// driver used for local runs) is selected by NewFromDriver.
package messaging
