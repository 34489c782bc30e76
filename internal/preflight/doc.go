// Package preflight provides readiness checks for the external binaries
// and filesystem paths that Mozaik depends on.
//
// The CLI "mozaik doctor" command runs every check and prints the results;
// "mozaik extract" runs CheckOutputDirectory before starting mkvextract so a
// read-only destination fails fast instead of after a long extraction.
package preflight
