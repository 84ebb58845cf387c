package output

import (
	"strings"
	"testing"
)

func TestTableFormatting(t *testing.T) {
	var b strings.Builder
	tbl := NewTable(&b)

	tbl.Header()
	tbl.Row(42, "a.js")
	tbl.SkipRow("empty.txt")
	tbl.Divider()
	tbl.Total(42)
	tbl.Limit(8192, "gpt-4")

	want := "TOKENS | FILENAME\n" +
		"    42 | a.js\n" +
		"       | empty.txt\n" +
		"_______|____________________\n" +
		"    42 | Total Tokens\n" +
		"  8192 | gpt-4 max input size\n"

	if b.String() != want {
		t.Errorf("table output:\ngot\n%q\nwant\n%q", b.String(), want)
	}
}
