package markdown

import "testing"

func TestHeaderFromBody(t *testing.T) {
	cases := map[string]string{
		"# Getting Started\nbody": "Getting Started",
		"## Nested\r\nbody":       "Nested",
		"Plain title\n\nsummary":  "Plain title",
		"":                        "",
		"#NoSpace":                "NoSpace",
	}
	for body, want := range cases {
		if got := HeaderFromBody(body); got != want {
			t.Fatalf("HeaderFromBody(%q) = %q, want %q", body, got, want)
		}
	}
}

func TestSummaryFromBody(t *testing.T) {
	cases := map[string]string{
		"# Title\n\nFirst paragraph line.\nSecond line.": "First paragraph line.",
		"# Title\nOnly line":                             "Only line",
		"# Title":                                        "",
		"# Title\n\n\n":                                  "",
	}
	for body, want := range cases {
		if got := SummaryFromBody(body); got != want {
			t.Fatalf("SummaryFromBody(%q) = %q, want %q", body, got, want)
		}
	}
}

func TestFirstLineStripsCarriageReturn(t *testing.T) {
	if got := FirstLine("https://example.com\r\nignored"); got != "https://example.com" {
		t.Fatalf("unexpected first line %q", got)
	}
}
