// Package kernel contains the shared value objects of the dispatch domain:
// UUID identifiers, geographic points with great-circle distance, postal
// addresses, and monetary amounts in integer cents.
//
// All types in this package are immutable value objects created through
// validating constructors; zero values fail Validate.
package kernel
