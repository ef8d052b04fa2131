package core

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// readAll drains the reader, failing the test on any non-EOF error.
func readAll(t *testing.T, f *FoldedLineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := f.ReadLine()
		if err == io.EOF {
			return lines
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines = append(lines, line)
	}
}

// TestReadLineUnfolded tests that input without fold markers passes through
// line by line, unchanged.
func TestReadLineUnfolded(t *testing.T) {
	input := "BEGIN:VCARD\nVERSION:2.1\nFN:John Doe\nEND:VCARD\n"
	f := NewFoldedLineReaderString(input)

	want := []string{"BEGIN:VCARD", "VERSION:2.1", "FN:John Doe", "END:VCARD"}
	got := readAll(t, f)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

// TestReadLineStandardFolding tests RFC-style folding with a leading space
// or tab on continuation lines.
func TestReadLineStandardFolding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "space continuation",
			input: "BEGIN:VCARD\nNOTE:a\n b\nEND:VCARD\n",
			want:  []string{"BEGIN:VCARD", "NOTE:ab", "END:VCARD"},
		},
		{
			name:  "tab continuation",
			input: "NOTE:a\n\tb\n",
			want:  []string{"NOTE:ab"},
		},
		{
			name:  "multiple continuations",
			input: "NOTE:one\n two\n three\nFN:x\n",
			want:  []string{"NOTE:onetwothree", "FN:x"},
		},
		{
			name: "exactly one whitespace character stripped",
			// Two leading spaces: only the first is folding whitespace.
			input: "NOTE:a\n  b\n",
			want:  []string{"NOTE:a b"},
		},
		{
			name:  "fold at end of stream",
			input: "NOTE:a\n b",
			want:  []string{"NOTE:ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldedLineReaderString(tt.input)
			got := readAll(t, f)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestReadLineBlankLines tests that blank physical lines are invisible to
// the caller, including blanks between a line and its continuation.
func TestReadLineBlankLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "blank between properties",
			input: "FN:John\n\n\nEMAIL:j@example.com\n",
			want:  []string{"FN:John", "EMAIL:j@example.com"},
		},
		{
			name:  "blank between folded lines",
			input: "NOTE:a\n\n b\n",
			want:  []string{"NOTE:ab"},
		},
		{
			name:  "leading and trailing blanks",
			input: "\n\nFN:John\n\n",
			want:  []string{"FN:John"},
		},
		{
			name:  "blank lines only",
			input: "\n\n\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldedLineReaderString(tt.input)
			got := readAll(t, f)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestReadLineQuotedPrintable tests the legacy quoted-printable folding
// style, where continuation is signaled by a trailing "=".
func TestReadLineQuotedPrintable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "outlook style with trailing blank line",
			input: "BEGIN:VCARD\n" +
				"NOTE;QUOTED-PRINTABLE: This is an=\n" +
				"annoyingly formatted=\n" +
				"note=\n" +
				"\n" +
				"END:VCARD\n",
			want: []string{
				"BEGIN:VCARD",
				"NOTE;QUOTED-PRINTABLE: This is anannoyingly formattednote",
				"END:VCARD",
			},
		},
		{
			name: "soft line breaks preserved",
			input: "NOTE;ENCODING=QUOTED-PRINTABLE:line1=0D=0A=\n" +
				"line2\n" +
				"FN:x\n",
			want: []string{"NOTE;ENCODING=QUOTED-PRINTABLE:line1=0D=0Aline2", "FN:x"},
		},
		{
			name: "folding whitespace on continuation stripped",
			input: "NOTE;QUOTED-PRINTABLE:a=\n" +
				" b=\n" +
				"\tc\n",
			want: []string{"NOTE;QUOTED-PRINTABLE:abc"},
		},
		{
			name:  "case insensitive token",
			input: "NOTE;quoted-printable:a=\nb\n",
			want:  []string{"NOTE;quoted-printable:ab"},
		},
		{
			name: "quoted-printable after colon is not legacy folding",
			// The token must appear before the first colon.
			input: "NOTE:QUOTED-PRINTABLE stuff=\nnext\n",
			want:  []string{"NOTE:QUOTED-PRINTABLE stuff=", "next"},
		},
		{
			name:  "no trailing equals is not legacy folding",
			input: "NOTE;QUOTED-PRINTABLE:plain\nnext\n",
			want:  []string{"NOTE;QUOTED-PRINTABLE:plain", "next"},
		},
		{
			name:  "dangling continuation at end of stream",
			input: "NOTE;QUOTED-PRINTABLE:a=\nb=\n",
			want:  []string{"NOTE;QUOTED-PRINTABLE:ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldedLineReaderString(tt.input)
			got := readAll(t, f)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestReadLineQuotedPrintableBlankTerminates tests that a blank line inside
// a legacy fold terminates the value: unlike standard mode, legacy mode
// reads the raw line source, and a blank line does not end with "=".
func TestReadLineQuotedPrintableBlankTerminates(t *testing.T) {
	input := "NOTE;QUOTED-PRINTABLE:a=\n" +
		"b\n" +
		"\n" +
		"END:VCARD\n"
	f := NewFoldedLineReaderString(input)

	want := []string{"NOTE;QUOTED-PRINTABLE:ab", "END:VCARD"}
	got := readAll(t, f)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

// TestLineNum tests physical line number tracking, including blank lines.
func TestLineNum(t *testing.T) {
	input := "FN:John\n" + // line 1
		"\n" + // line 2 (blank, skipped but counted)
		"NOTE:a\n" + // line 3
		" b\n" + // line 4 (continuation)
		"EMAIL:j@example.com\n" // line 5
	f := NewFoldedLineReaderString(input)

	if got := f.LineNum(); got != 0 {
		t.Errorf("LineNum before first read = %d, want 0", got)
	}

	wantNums := []struct {
		line string
		num  int
	}{
		{"FN:John", 1},
		{"NOTE:ab", 3},
		{"EMAIL:j@example.com", 5},
	}
	for _, want := range wantNums {
		line, err := f.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if line != want.line {
			t.Errorf("ReadLine = %q, want %q", line, want.line)
		}
		if got := f.LineNum(); got != want.num {
			t.Errorf("LineNum after %q = %d, want %d", want.line, got, want.num)
		}
	}
}

// TestLineNumQuotedPrintable tests that the line number reflects the first
// physical line of a legacy-folded value.
func TestLineNumQuotedPrintable(t *testing.T) {
	input := "BEGIN:VCARD\n" + // line 1
		"NOTE;QUOTED-PRINTABLE:a=\n" + // line 2
		"b=\n" + // line 3
		"c\n" + // line 4
		"END:VCARD\n" // line 5
	f := NewFoldedLineReaderString(input)

	wantNums := []struct {
		line string
		num  int
	}{
		{"BEGIN:VCARD", 1},
		{"NOTE;QUOTED-PRINTABLE:abc", 2},
		{"END:VCARD", 5},
	}
	for _, want := range wantNums {
		line, err := f.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if line != want.line {
			t.Errorf("ReadLine = %q, want %q", line, want.line)
		}
		if got := f.LineNum(); got != want.num {
			t.Errorf("LineNum after %q = %d, want %d", line, got, want.num)
		}
	}
}

// TestReadLineEOF tests end-of-stream behavior.
func TestReadLineEOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"blank lines only", "\n\n"},
		{"after content", "FN:John\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldedLineReaderString(tt.input)
			for {
				_, err := f.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			// EOF must be sticky.
			for i := 0; i < 2; i++ {
				if _, err := f.ReadLine(); err != io.EOF {
					t.Errorf("ReadLine after EOF = %v, want io.EOF", err)
				}
			}
		})
	}
}

// TestReadLineTerminators tests CR, LF, and CRLF line terminators.
func TestReadLineTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"CRLF", "FN:a\r\nEMAIL:b\r\n", []string{"FN:a", "EMAIL:b"}},
		{"CR only", "FN:a\rEMAIL:b\r", []string{"FN:a", "EMAIL:b"}},
		{"mixed", "FN:a\nEMAIL:b\r\nNOTE:c", []string{"FN:a", "EMAIL:b", "NOTE:c"}},
		{"unterminated final line", "FN:a", []string{"FN:a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldedLineReaderString(tt.input)
			got := readAll(t, f)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// errReader returns data, then a non-EOF error.
type errReader struct {
	data string
	err  error
	pos  int
}

func (r *errReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, r.err
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// TestReadLineError tests that underlying read errors propagate and no
// partial line is returned. The reader probes for continuation lines, so
// the failure aborts the whole in-progress logical line.
func TestReadLineError(t *testing.T) {
	wantErr := errors.New("disk on fire")
	f := NewFoldedLineReader(&errReader{data: "FN:John\nNOTE:partial", err: wantErr})

	line, err := f.ReadLine()
	if !errors.Is(err, wantErr) {
		t.Fatalf("ReadLine error = %v, want %v", err, wantErr)
	}
	if line != "" {
		t.Errorf("ReadLine = %q, want empty on error", line)
	}
}

// TestEncoding tests encoding metadata capture.
func TestEncoding(t *testing.T) {
	f := NewFoldedLineReaderString("FN:John\n")
	if enc := f.Encoding(); enc != nil {
		t.Errorf("Encoding = %v, want nil for plain reader", enc)
	}
}

func TestFoldedQuotedPrintableRegex(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"NOTE;QUOTED-PRINTABLE: This is an=", true},
		{"NOTE;ENCODING=QUOTED-PRINTABLE:text=", true},
		{"note;quoted-printable:text=", true},
		{"NOTE;QUOTED-PRINTABLE:text", false},
		{"NOTE:QUOTED-PRINTABLE after colon=", false},
		{"NOTE:plain=", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := foldedQuotedPrintableRegex.MatchString(tt.line); got != tt.want {
				t.Errorf("match(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
