// Package htmlinput reads local HTML documents for the HTML capabilities.
package htmlinput

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"alchemy/internal/util"
)

// Document is a parsed HTML page.
type Document struct {
	Raw   string // original markup, sent as-is to HTML endpoints
	Title string
	// URL is the canonical link or og:url, empty if the page declares neither.
	URL  string
	Text string // visible text with block elements separated by newlines
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	text, err := util.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(strings.NewReader(text))
}

// Parse reads a document from r.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("html document is empty")
	}
	root, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Raw: string(raw)}
	var canonical, ogURL string
	var walkHead func(*html.Node)
	walkHead = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if doc.Title == "" && n.FirstChild != nil {
					doc.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "link":
				if strings.EqualFold(attr(n, "rel"), "canonical") {
					canonical = attr(n, "href")
				}
			case "meta":
				if attr(n, "property") == "og:url" {
					ogURL = attr(n, "content")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkHead(c)
		}
	}
	walkHead(root)

	doc.URL = canonical
	if doc.URL == "" {
		doc.URL = ogURL
	}

	var buf strings.Builder
	extractText(root, &buf)
	doc.Text = normalize(buf.String())
	return doc, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// Tags whose content never counts as page text.
var ignoreTags = map[string]bool{
	"script": true, "style": true, "head": true, "nav": true,
	"footer": true, "aside": true, "form": true, "noscript": true,
}

func extractText(n *html.Node, buf *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(strings.ReplaceAll(n.Data, "\u00A0", " "))
		if text != "" {
			buf.WriteString(text)
			buf.WriteString(" ")
		}
		return
	case html.ElementNode:
		if ignoreTags[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
	if isBlockElement(n) {
		buf.WriteString("\n")
	}
}

// normalize collapses runs of spaces and drops blank lines.
func normalize(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func isBlockElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "address", "article", "blockquote", "dd", "div", "dl", "dt", "figcaption", "figure",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "li", "main", "ol", "p", "pre",
		"section", "table", "tr", "ul", "br":
		return true
	default:
		return false
	}
}
