package browser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PageSnapshot is a cleaned copy of a page's DOM captured when a test
// fails. Scripts, styles and presentation noise are stripped; the
// attributes the page objects locate by (id, class, name, data-*) are
// kept so a failing selector can be diagnosed from the snapshot alone.
type PageSnapshot struct {
	Title       string
	Description string
	HTML        string
	Truncated   bool
}

// DefaultSnapshotLength bounds snapshot size; storefront pages easily
// run past a megabyte of markup.
const DefaultSnapshotLength = 200000

// CleanPage parses raw page HTML and produces a snapshot.
func CleanPage(rawHTML string, maxLength int) (*PageSnapshot, error) {
	if maxLength <= 0 {
		maxLength = DefaultSnapshotLength
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	snapshot := &PageSnapshot{
		Title:       findMetadata(doc, matchTitle),
		Description: findMetadata(doc, matchMetaDescription),
	}

	var b strings.Builder
	written := 0
	snapshot.Truncated = writeClean(doc, &b, &written, maxLength, 0)
	snapshot.HTML = b.String()
	return snapshot, nil
}

// Render produces the snapshot file contents: a small header comment
// followed by the cleaned markup.
func (s *PageSnapshot) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- title: %s -->\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "<!-- description: %s -->\n", s.Description)
	}
	if s.Truncated {
		b.WriteString("<!-- snapshot truncated -->\n")
	}
	b.WriteString(s.HTML)
	return b.String()
}

var strippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

var blockTags = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "main": true,
	"aside": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true,
	"form": true, "fieldset": true, "select": true, "option": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// writeClean walks the tree writing cleaned markup. Returns true once
// the length budget is exhausted.
func writeClean(n *html.Node, b *strings.Builder, written *int, maxLength, depth int) bool {
	if *written >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return false
		}
		if *written+len(text) > maxLength {
			// Back up to a rune boundary so the cut never leaves
			// invalid UTF-8 at the end of the snapshot
			cut := maxLength - *written
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			b.WriteString(text[:cut])
			*written = maxLength
			return true
		}
		b.WriteString(text)
		*written += len(text)
		return false
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if strippedTags[tag] {
			return false
		}
		return writeElement(n, tag, b, written, maxLength, depth)
	default:
		// Document and fragment nodes: descend
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if writeClean(c, b, written, maxLength, depth) {
				return true
			}
		}
		return false
	}
}

func writeElement(n *html.Node, tag string, b *strings.Builder, written *int, maxLength, depth int) bool {
	if depth > 0 && blockTags[tag] {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", depth))
	}

	b.WriteString("<")
	b.WriteString(tag)
	for _, attr := range n.Attr {
		if keepAttribute(tag, strings.ToLower(attr.Key)) {
			fmt.Fprintf(b, " %s=%q", attr.Key, attr.Val)
		}
	}
	b.WriteString(">")
	*written += len(tag) + 2

	truncated := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if writeClean(c, b, written, maxLength, depth+1) {
			truncated = true
			break
		}
	}

	if !voidTags[tag] {
		if blockTags[tag] {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("  ", depth))
		}
		fmt.Fprintf(b, "</%s>", tag)
		*written += len(tag) + 3
	}
	return truncated
}

// keepAttribute reports whether an attribute is worth keeping for
// selector debugging.
func keepAttribute(tag, key string) bool {
	switch key {
	case "id", "class", "name", "role", "aria-label":
		return true
	}
	if strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "js-") {
		return true
	}

	switch tag {
	case "a":
		return key == "href"
	case "img":
		return key == "src" || key == "alt"
	case "input", "textarea", "select", "button":
		return key == "type" || key == "placeholder" || key == "value"
	case "form":
		return key == "action" || key == "method"
	case "option":
		return key == "value" || key == "selected"
	}
	return false
}

type metadataMatch func(n *html.Node) (string, bool)

func matchTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data), true
		}
	}
	return "", false
}

func matchMetaDescription(n *html.Node) (string, bool) {
	if n.Type != html.ElementNode || n.Data != "meta" {
		return "", false
	}
	var isDescription bool
	var content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			isDescription = attr.Val == "description"
		case "content":
			content = attr.Val
		}
	}
	if isDescription && content != "" {
		return strings.TrimSpace(content), true
	}
	return "", false
}

func findMetadata(doc *html.Node, match metadataMatch) string {
	var result string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if value, ok := match(n); ok {
			result = value
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return result
}
