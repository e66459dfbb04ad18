package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParagraphs(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "single sentence",
			raw:  "Boil.",
			want: []string{"Boil."},
		},
		{
			name: "windows line breaks and blank lines",
			raw:  "Preheat the oven.\r\n\r\nMix the flour.\r\nBake for 20 minutes.",
			want: []string{"Preheat the oven.", "Mix the flour.", "Bake for 20 minutes."},
		},
		{
			name: "step labels on their own line",
			raw:  "STEP 1\r\nChop the onions.\r\nSTEP 2\r\nFry them.\nstep 3:\nServe.",
			want: []string{"Chop the onions.", "Fry them.", "Serve."},
		},
		{
			name: "step word inside a sentence is kept",
			raw:  "Step 1 is to wash your hands.",
			want: []string{"Step 1 is to wash your hands."},
		},
		{
			name: "collapses inner whitespace",
			raw:  "  Add   salt \t and pepper.  ",
			want: []string{"Add salt and pepper."},
		},
		{
			name: "empty",
			raw:  " \r\n ",
			want: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Paragraphs(tc.raw))
		})
	}
}
