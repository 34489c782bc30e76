// Package fileutil provides atomic and verified file writes.
package fileutil
