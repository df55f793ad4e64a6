// Package order contains the Order aggregate: a student's end-to-end
// storage engagement. Orders never change status on their own; every
// transition is driven by a status change of one of the order's jobs and
// checked against an explicit transition table.
package order
