package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			newStr.WriteRune(' ')
		case unicode.IsPrint(c):
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText drops non-printable runes, turns every kind of whitespace into
// a plain space and collapses runs of it.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " ")
	s = innerWhitespace.ReplaceAllString(s, " ")
	return s
}

// SelectionText is the cleaned text of the first node in sel, or "" when sel is empty.
func SelectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return CleanText(GetText(sel.Nodes[0]))
}
