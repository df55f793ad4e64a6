// Package queries implements the read side of the dispatch engine.
//
// Query handlers bypass the aggregates and read the store directly for
// speed, except where a read model feeds a domain service (the smart route
// planner works on restored job aggregates). Each query is a small
// constructor-guarded value object so a handler never runs on a zero-value
// request.
package queries
