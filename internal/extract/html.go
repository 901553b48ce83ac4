package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// tagAttr is one (element, attribute) pair inspected during the DOM pass.
type tagAttr struct {
	tag    string
	attr   string
	srcset bool
}

// htmlTagAttrs is the fixed list of element attributes that can carry
// asset references.
var htmlTagAttrs = []tagAttr{
	{tag: "img", attr: "src"},
	{tag: "img", attr: "srcset", srcset: true},
	{tag: "source", attr: "src"},
	{tag: "source", attr: "srcset", srcset: true},
	{tag: "video", attr: "src"},
	{tag: "video", attr: "poster"},
	{tag: "audio", attr: "src"},
	{tag: "track", attr: "src"},
	{tag: "script", attr: "src"},
	{tag: "link", attr: "href"},
	{tag: "iframe", attr: "src"},
	{tag: "embed", attr: "src"},
	{tag: "object", attr: "data"},
	{tag: "use", attr: "href"},
	{tag: "use", attr: "xlink:href"},
}

// FromHTML extracts asset URLs from an HTML document.
//
// It combines a DOM-aware pass over known (tag, attribute) pairs, inline
// style attributes, <style> blocks, and lazy-load data attributes with a
// raw-text regex pass over the whole document. The DOM pass avoids false
// positives on irregular markup; the regex pass catches references that
// sit in script bodies or attributes the DOM pass does not know about.
//
// Design decision: we parse with golang.org/x/net/html rather than
// regex alone because:
//  1. It correctly handles malformed HTML common on the web
//  2. srcset and lazy-load attributes need structured access
//  3. Complex attribute regexes are harder to maintain
func (e *Extractor) FromHTML(text string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	set := make(urlSet)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			e.processElement(n, set)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Raw-text pass over the whole document catches absolute URLs in
	// inline scripts and unconventional attributes.
	for _, u := range e.scanText(text) {
		e.add(set, u)
	}

	return set.sorted(), nil
}

// processElement collects candidates from one element node.
func (e *Extractor) processElement(n *html.Node, set urlSet) {
	for _, ta := range htmlTagAttrs {
		if n.Data != ta.tag {
			continue
		}
		val := getAttr(n, ta.attr)
		if val == "" {
			continue
		}
		if ta.srcset {
			for _, u := range splitSrcset(val) {
				e.add(set, u)
			}
		} else {
			e.add(set, val)
		}
	}

	// Inline style attributes can carry url(...) backgrounds.
	if style := getAttr(n, "style"); style != "" {
		for _, u := range cssURLValues(style) {
			e.add(set, u)
		}
	}

	// <style> blocks get the full CSS treatment.
	if n.Data == "style" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
		for _, u := range cssURLValues(n.FirstChild.Data) {
			e.add(set, u)
		}
	}

	// Lazy-load data attributes can appear on any element.
	for _, attr := range e.lazyAttrs {
		val := getAttr(n, attr)
		if val == "" {
			continue
		}
		if strings.HasSuffix(attr, "srcset") {
			for _, u := range splitSrcset(val) {
				e.add(set, u)
			}
		} else {
			e.add(set, val)
		}
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
