package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add(strings.Repeat("long line ", 100))

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		r := FromString(s)
		if r.Len() != len(s) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), len(s))
		}
		if r.String() != s {
			t.Errorf("content mismatch")
		}
		if r.LineCount() != strings.Count(s, "\n")+1 {
			t.Errorf("LineCount() = %d", r.LineCount())
		}
	})
}

// FuzzReplace checks Replace against string splicing.
func FuzzReplace(f *testing.F) {
	f.Add("hello", 0, 0, "x")
	f.Add("hello", 5, 5, "x")
	f.Add("hello world", 3, 8, "")
	f.Add("", 0, 0, "test")
	f.Add(strings.Repeat("abc\n", 200), 10, 700, "日本語")

	f.Fuzz(func(t *testing.T, initial string, start, end int, text string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(text) {
			return
		}
		start = clampBoundary(initial, start)
		end = clampBoundary(initial, end)
		if start > end {
			start, end = end, start
		}

		got := FromString(initial).Replace(start, end, text)
		want := initial[:start] + text + initial[end:]
		if got.String() != want {
			t.Fatalf("Replace(%d, %d, %q) = %q, want %q", start, end, text, got.String(), want)
		}
		if err := got.t.Validate(); err != nil {
			t.Fatal(err)
		}
	})
}

// clampBoundary maps an arbitrary int to a rune boundary of s.
func clampBoundary(s string, i int) int {
	if i < 0 {
		i = -(i + 1)
	}
	if len(s) == 0 {
		return 0
	}
	i %= len(s) + 1
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
