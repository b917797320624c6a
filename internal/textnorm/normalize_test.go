package textnorm

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"form feed", "page one\x0cpage two", "page one page two"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"space runs", "a  \t  b", "a b"},
		{"blank lines", "a\n\n\n\nb", "a\nb"},
		{"trim", "  \n hello \n  ", "hello"},
		{"already clean", "Invoice No: 42\nTotal: 10.00", "Invoice No: 42\nTotal: 10.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a  b\r\n\r\n\r\nc\x0cd",
		"ACME STORE\n\nSubtotal: 10.00\n\n\nThank you",
		"\t\tindented\t\t",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanNoLongBlankRuns(t *testing.T) {
	got := Clean("a" + strings.Repeat("\n", 10) + "b")
	if strings.Contains(got, "\n\n") {
		t.Errorf("Clean left consecutive blank lines: %q", got)
	}
}

func TestLines(t *testing.T) {
	got := Lines("first\n  second  \n\nthird")
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Lines returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Lines("") != nil {
		t.Error("Lines(\"\") should be nil")
	}
}
