package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only whitespace", in: " \n\t ", want: ""},
		{name: "url and whitespace", in: "Hello   world\n\nSee http://x.co", want: "Hello world See"},
		{name: "https url mid sentence", in: "Visit https://a.b/c?d=e now", want: "Visit now"},
		{name: "image placeholder", in: "Logo ![company logo](cid:123) Welcome", want: "Logo Welcome"},
		{
			name: "table rows",
			in:   "Order summary\n| Item | Qty |\n|------|-----|\n| Tea  | 2   |\nThanks",
			want: "Order summary Thanks",
		},
		{name: "table at end of body", in: "Totals\n| a | 1 |\n| b | 2 |", want: "Totals"},
		{name: "table with crlf lines", in: "Hi\r\n| a |\r\n| b |\r\nBye", want: "Hi Bye"},
		{name: "pipes inside prose kept", in: "Use a | b or c | d\nok", want: "Use a | b or c | d ok"},
		{name: "single bracketed line kept", in: "|Note| see you at |v2|", want: "|Note| see you at |v2|"},
		{
			name: "prose opening and closing with a pipe kept",
			in:   "|Note| the quarterly budget review moved to Friday, please bring the\nforecast numbers for |v2|",
			want: "|Note| the quarterly budget review moved to Friday, please bring the forecast numbers for |v2|",
		},
		{name: "separator", in: "Above\n---\nBelow", want: "Above Below"},
		{name: "longer rule", in: "a ------ b", want: "a b"},
		{name: "nested image placeholder", in: "x !![a](b)[c](d) y", want: "x y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain words only",
		"Hello   world\n\nSee http://x.co",
		"|Note| the quarterly budget review moved to Friday, please bring the\nforecast numbers for |v2|",
		"| a | b |\n| c | d |\nafter the table",
		"|solo row|",
		"x !![a](b)[c](d) y",
		"-\n--",
		"----",
		"http://a http://b  text ![i](j) | row |\n---",
		"tab\tseparated\r\nlines",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestTextPlainRoundTrip(t *testing.T) {
	in := "  Lunch is moved\nto Friday at noon.\n\n  Bring   snacks!  "
	assert.Equal(t, "Lunch is moved to Friday at noon. Bring snacks!", Text(in))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, 0, Tokens(""))
	assert.Equal(t, 3, Tokens("Hi there friend"))
	assert.Equal(t, 5, Tokens(" a b\nc\td  e "))
}
