// Package rewrite performs the substitution of remote asset URLs with
// local relative paths inside document text.
//
// Both entry points are pure functions over text and a URL-to-path
// mapping; callers decide whether and where to persist the result.
package rewrite
