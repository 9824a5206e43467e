// Package parse turns raw media filenames into best-effort structured
// attributes. It is the pipeline's metadata extractor: fallible, partial,
// and deterministic for the same input.
//
// Parsing is an ordered rule table evaluated against the filename stem;
// first match wins for episode numbering, then independent passes pick off
// resolution, year, and part indicators. Anything the filename does not say
// stays at its zero value.
package parse
