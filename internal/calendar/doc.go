// Package calendar implements the year arithmetic behind temporal expressions:
// eras, precision qualifiers, and the century, millennium, decade, tolerance
// and range compositions that turn them into spans.
//
// All functions are pure. A Calendar value only carries the epoch used for
// Before Present dates.
package calendar
