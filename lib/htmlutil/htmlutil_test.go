package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanInline(t *testing.T) {
	require.Equal(t, "Natus Vincere", CleanInline("  Natus\n  Vincere\t"))
	require.Equal(t, "", CleanInline(" \n\t "))
}

func TestNumbers(t *testing.T) {
	require.Equal(t, []float64{1.21, 82, 73.1}, Numbers("rating 1.21 / 82 adr / 73.1% kast"))
	require.Empty(t, Numbers("no digits"))
}

func TestCleanNumeric(t *testing.T) {
	require.Equal(t, "3", CleanNumeric("#3"))
	require.Equal(t, "1850", CleanNumeric("(1850)"))
	require.Equal(t, "45.5", CleanNumeric(" 45.5% "))
}

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body>
		<div class="name"><b>Natus</b> <i>Vincere</i></div>
		<div class="name">Vitality</div>
		</body></html>`,
	))
	require.NoError(t, err)

	// only the first match is read, repeated blocks never concatenate
	require.Equal(t, "Natus Vincere", Text(doc.Find(".name")))
	require.Equal(t, "", Text(doc.Find(".missing")))
}

func TestHref(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><a href="/team/9565/vitality">Vitality</a></body></html>`,
	))
	require.NoError(t, err)
	require.Equal(t, "/team/9565/vitality", Href(doc.Find("a")))
	require.Equal(t, "", Href(doc.Find("span")))
}
