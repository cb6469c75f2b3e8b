// Package webhooks posts import events to configured HTTP endpoints.
//
// Each endpoint subscribes to a set of event types. Deliveries are JSON, signed with
// HMAC-SHA256 when the endpoint has a secret, and retried with exponential backoff:
//
//	POST /hook
//	X-Ordcheck-Event: import.completed
//	X-Ordcheck-Event-ID: 6f1c...
//	X-Ordcheck-Signature: sha256=9a0b...
//
// Receivers check the signature with VerifySignature. A Notifier plugs into
// ingest.WithNotifier and delivers in the background; Close waits for in-flight
// deliveries.
package webhooks
