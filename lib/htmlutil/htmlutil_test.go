package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  3 Wheeler\n", expected: "3 Wheeler"},
		{input: "₹585 - ₹615", expected: "₹585 - ₹615"},
		{input: "500\t\tkg", expected: "500 kg"},
		{input: "\u200bTata Ace", expected: "Tata Ace"},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, CleanText(row.input))
	}
}

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><p class="name"> Tata <b>Ace</b> </p><p class="name">second</p></div>`,
	))
	require.NoError(t, err)

	require.Equal(t, "Tata Ace", SelectionText(doc.Find("p.name")))
	require.Equal(t, "", SelectionText(doc.Find("p.missing")))
}
