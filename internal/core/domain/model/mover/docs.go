// Package mover holds the read-only mover profile consumed by route
// planning: weekly availability windows, carrying capacity and the
// earnings ledger.
package mover
