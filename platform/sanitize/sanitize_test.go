package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Kunden vill vänta.", want: "Kunden vill vänta."},
		{name: "tags", input: "<b>för dyrt</b> enligt kund", want: "för dyrt enligt kund"},
		{name: "encoded tags", input: "&lt;script&gt;alert(1)&lt;/script&gt;ok", want: "alert(1)ok"},
		{name: "keeps line breaks", input: "rad ett\r\nrad två\n", want: "rad ett\nrad två"},
		{name: "drops control chars", input: "pris\x00\x07 diskuterat", want: "pris diskuterat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Fatalf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	if got := Line("  Anna \n  Svensson\t"); got != "Anna Svensson" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := Line("<i>Solna</i>,  Centrum"); got != "Solna, Centrum" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestPrintableKeepsAngleBrackets(t *testing.T) {
	in := "priset < 3000 kr/mån,\r\nvill vänta > 2 veckor\x00 "
	if got := Printable(in); got != "priset < 3000 kr/mån,\nvill vänta > 2 veckor" {
		t.Fatalf("unexpected printable text %q", got)
	}
}
