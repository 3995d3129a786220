// Package htmlutil provides document-order traversal helpers over parsed
// HTML trees. Section extraction needs "the next div after this heading"
// and "the nearest h2 before this heading" in full document order — child
// subtrees included — which CSS sibling selectors cannot express.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Text returns the concatenated text content of a node's subtree.
func Text(node *html.Node) string {
	var buffer bytes.Buffer
	textRecursive(node, &buffer)
	return buffer.String()
}

func textRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		textRecursive(child, buffer)
		child = child.NextSibling
	}
}

// NextByTag returns the first element named tag that follows start in
// document order, or nil. The walk descends into subtrees, so a container
// that is not a direct sibling of start is still found.
func NextByTag(start *html.Node, tag string) *html.Node {
	for n := nextInDocument(start); n != nil; n = nextInDocument(n) {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
	}
	return nil
}

// PrevByTag returns the nearest element named tag that precedes start in
// document order, or nil.
func PrevByTag(start *html.Node, tag string) *html.Node {
	for n := prevInDocument(start); n != nil; n = prevInDocument(n) {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
	}
	return nil
}

// nextInDocument returns the node following n in document order: first
// child, else next sibling, else the next sibling of the nearest ancestor
// that has one.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// prevInDocument returns the node preceding n in document order: the
// deepest last descendant of the previous sibling, else the parent.
func prevInDocument(n *html.Node) *html.Node {
	if n.PrevSibling != nil {
		n = n.PrevSibling
		for n.LastChild != nil {
			n = n.LastChild
		}
		return n
	}
	return n.Parent
}

// InnerHTML serializes the inner markup of the first node in the
// selection, trimmed. Inline emphasis tags survive; an empty selection
// yields "".
func InnerHTML(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	h, err := s.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CollapseWhitespace trims a string and folds internal whitespace runs to
// single spaces, for comparing heading text.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ContainsKana reports whether s contains hiragana or katakana, which
// marks reading text as opposed to English description text.
func ContainsKana(s string) bool {
	for _, r := range s {
		if (r >= 0x3040 && r <= 0x309f) || (r >= 0x30a0 && r <= 0x30ff) {
			return true
		}
	}
	return false
}
