package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{
			input:  "<p>To amend title 18, <b>United States Code</b>.</p>",
			expect: "To amend title 18, United States Code.",
		},
		{
			input:  "Issues related to  health\n\ncoverage",
			expect: "Issues related to health coverage",
		},
		{
			input:  "plain title",
			expect: "plain title",
		},
		{
			input:  "<ul><li>tariffs</li><li>trade</li></ul>",
			expect: "tariffstrade",
		},
		{
			input:  "",
			expect: "",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, StripTags(test.input), test.input)
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b", CleanText("  a \t\n b  "))
	require.Equal(t, "ab", CleanText("a\x00b"))
}
