// Package main provides the entry point for the assetmirror CLI.
//
// assetmirror localizes a static site's dependency on third-party CDNs:
// it downloads the remote assets referenced by the site's HTML/CSS/JS,
// rewrites all references to point at the local copies, and optionally
// normalizes internal navigation links.
//
// Usage:
//
//	assetmirror mirror [dir]
//	assetmirror mirror --recursive --include-css
//
// See --help for all available options.
package main

// main is the entry point for assetmirror.
func main() {
	Execute()
}
