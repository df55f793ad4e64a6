// Package job contains the Job aggregate: a claimable unit of physical work
// (storage pickup or return delivery) derived from an order.
//
// The lifecycle is encoded as an explicit (status, event) -> status table per
// job type rather than scattered conditionals, so the two-step
// arrival-request/student-confirmation handshake is auditable and skipped
// steps are impossible. The single-claim rule — a job becomes Accepted at
// most once, and only from Available — is the core correctness property of
// the whole dispatch engine; under concurrency it is enforced by the
// persistence layer's atomic conditional update, which mirrors the domain
// transition exactly.
package job
