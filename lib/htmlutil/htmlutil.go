package htmlutil

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under the given node, in
// document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

// Text returns the cleaned text content of the first node in the
// selection. Unlike goquery's Text it only reads the first match, so a
// selector that accidentally hits repeated layout blocks does not glue
// their contents together.
func Text(sel *goquery.Selection) string {
	first := sel.First()
	if len(first.Nodes) == 0 {
		return ""
	}
	return CleanInline(GetText(first.Nodes[0]))
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
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanInline normalizes the text content of an inline element: strips
// non-printable runes, trims surrounding whitespace and collapses inner
// whitespace runs to a single space.
func CleanInline(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)

// Numbers returns every decimal number that appears in the given text,
// in document order. Non-numeric noise around them is ignored.
func Numbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CleanNumeric strips the decorations this site likes to wrap numbers
// in (`#3`, `(1850)`, `45.5%`) so the remainder parses as a plain
// number.
func CleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.Trim(s, "()")
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}

// Href returns the href attribute of the first node in the selection.
func Href(sel *goquery.Selection) string {
	return sel.AttrOr("href", "")
}
