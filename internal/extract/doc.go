// Package extract discovers remote asset URLs in HTML documents,
// stylesheets, and raw script text.
//
// Extraction is pure text-in/URLs-out: no I/O, deterministic results,
// set semantics. HTML gets a DOM-aware pass over a fixed list of
// element attributes plus a raw-text regex fallback; CSS extraction
// matches url(...) calls and @import directives.
package extract
