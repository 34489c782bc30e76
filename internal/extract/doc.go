// Package extract plans and runs mkvextract track extraction.
//
// A Selection holds the track ids chosen from the current manifest. Build
// turns a selection into a Plan: one destination per selected track, in
// ascending id order, named track_{id}.{lang}.{ext} inside the output
// directory. Ids that no longer exist in the manifest are skipped.
//
// Extractor.Run executes a plan through `mkvextract tracks`, streaming tool
// output to the caller, and classifies the outcome by exit status and by
// which destination files were actually written.
package extract
