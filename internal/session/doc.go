// Package session owns the probe results and track selection for one
// media file and enforces the extraction workflow:
//
//	Idle -> Probing -> Ready -> Extracting -> Completed
//
// Opening a new file replaces every probe result and clears the selection.
// A failed probe leaves the previous file loaded. Extraction is accepted
// only from Ready with a non-empty selection, and Completed is reached once
// mkvextract terminates, whatever its exit status; the extract.Result
// records whether it succeeded.
package session
