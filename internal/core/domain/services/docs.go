// Package services contains stateless domain services operating over the
// aggregates: Settlement (price splits, late fees, refunds), RoutePlanner
// (earnings-maximizing itineraries under a time budget) and
// NotificationPolicy (room fan-out with narrowing on assignment).
package services
