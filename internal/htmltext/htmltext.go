// Package htmltext extracts the readable text of an HTML fragment. Topic
// bodies arrive from the forum editor as HTML; the classifier wants plain
// text.
package htmltext

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Tags whose content carries no readable text.
var ignoreTags = map[string]bool{
	"script": true, "style": true, "head": true, "nav": true,
	"footer": true, "aside": true, "form": true, "noscript": true,
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "tr": true,
}

// Extract returns the text content of the fragment with block boundaries
// collapsed to single newlines. Input that fails to parse is returned as-is:
// plain text is valid input too.
func Extract(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		log.WithError(err).Debug("failed to parse HTML fragment, returning input unchanged")
		return fragment
	}

	var b strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && ignoreTags[n.Data] {
			return
		}
		if n.Type == html.ElementNode && blockTags[n.Data] && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(doc)

	return strings.TrimSpace(b.String())
}
