package shellsyntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCanonicalRoundTrip checks the headline property: formatting a
// parsed statement and re-parsing the result reproduces the same AST,
// and reformatting it again reproduces the same string (idempotence).
func TestCanonicalRoundTrip(t *testing.T) {
	lines := []string{
		"cmd1 arg1 arg2",
		"'cmd 1' 'arg 1'",
		"cmd1 > file1.txt",
		"cmd1 2>&- >&-",
		"cmd1 | cmd2 | cmd3",
		"cmd1 && cmd2 || cmd3",
		"cmd1 arg1 & cmd2",
		`cmd1 \'`,
	}
	for _, line := range lines {
		first, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", line, err)
		}
		canonical := FormatStatements(first)
		joined := ""
		for i, s := range canonical {
			if i > 0 {
				joined += "; "
			}
			joined += s
		}
		second, err := Parse(joined)
		if err != nil {
			t.Fatalf("re-parsing canonical form %q: unexpected error %v", joined, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Parse(%q) vs re-parsed canonical form %q differ (-want +got):\n%s", line, joined, diff)
		}
		if again := FormatStatements(second); !cmp.Equal(canonical, again) {
			t.Errorf("re-formatting %q is not idempotent: %v vs %v", joined, canonical, again)
		}
	}
}

func TestQuoteWordEmbeddedSingleQuote(t *testing.T) {
	cases := []struct{ word, want string }{
		{"", "''"},
		{"plain", "'plain'"},
		{"'", `''\'''`},
		{`\arg1'`, `'\arg1'\'''`},
	}
	for _, tc := range cases {
		if got := quoteWord(Word(tc.word)); got != tc.want {
			t.Errorf("quoteWord(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestMultiplePipesWithQuoting(t *testing.T) {
	line := `cmd1 'arg1' 'arg2' 'arg3' | cmd2 | cmd3 "\arg1'"`
	want := `cmd1 arg1 arg2 arg3 | cmd2 | cmd3 '\arg1'\'''`
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatStatement(cmd); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
