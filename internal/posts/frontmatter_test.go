package posts

import (
	"reflect"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantMeta Metadata
		wantBody string
	}{
		{
			name:     "well formed header",
			input:    "---\ntitle: Hello\npublishedAt: 2024-08-06\nsummary: First post\n---\nBody text\n",
			wantMeta: Metadata{"title": "Hello", "publishedAt": "2024-08-06", "summary": "First post"},
			wantBody: "Body text\n",
		},
		{
			name:     "double quoted value",
			input:    "---\npublishedAt: \"2024-08-06\"\n---\n",
			wantMeta: Metadata{"publishedAt": "2024-08-06"},
			wantBody: "",
		},
		{
			name:     "single quoted value",
			input:    "---\ntitle: 'Spaced out '\n---\nx",
			wantMeta: Metadata{"title": "Spaced out "},
			wantBody: "x",
		},
		{
			name:     "mismatched quotes kept",
			input:    "---\ntitle: \"half'\n---\n",
			wantMeta: Metadata{"title": "\"half'"},
			wantBody: "",
		},
		{
			name:     "lone quote kept",
			input:    "---\ntitle: \"\n---\n",
			wantMeta: Metadata{"title": "\""},
			wantBody: "",
		},
		{
			name:     "only first colon splits",
			input:    "---\nsummary: A look at x: y and z\n---\n",
			wantMeta: Metadata{"summary": "A look at x: y and z"},
			wantBody: "",
		},
		{
			name:     "lines without colon are skipped",
			input:    "---\njust words\ntitle: Kept\n\n   \n: orphan value\n---\nbody",
			wantMeta: Metadata{"title": "Kept"},
			wantBody: "body",
		},
		{
			name:     "last duplicate wins",
			input:    "---\ntitle: First\ntitle: Second\n---\n",
			wantMeta: Metadata{"title": "Second"},
			wantBody: "",
		},
		{
			name:     "freeform keys preserved",
			input:    "---\nimage: /og.png\nreadingTime: 5 min\n---\n",
			wantMeta: Metadata{"image": "/og.png", "readingTime": "5 min"},
			wantBody: "",
		},
		{
			name:     "no delimiter",
			input:    "# Just markdown\n\nNo header here.\n",
			wantMeta: Metadata{},
			wantBody: "# Just markdown\n\nNo header here.\n",
		},
		{
			name:     "single delimiter",
			input:    "---\ntitle: Unclosed\nstill going\n",
			wantMeta: Metadata{},
			wantBody: "---\ntitle: Unclosed\nstill going\n",
		},
		{
			name:     "delimiter must be the whole line",
			input:    "----\ntitle: x\n--- \n",
			wantMeta: Metadata{},
			wantBody: "----\ntitle: x\n--- \n",
		},
		{
			name:     "body separators are not metadata",
			input:    "---\ntitle: T\n---\nintro\n---\nkey: value\n",
			wantMeta: Metadata{"title": "T"},
			wantBody: "intro\n---\nkey: value\n",
		},
		{
			name:     "horizontal rules without front matter",
			input:    "Intro paragraph\n---\nSetext section\n---\nmore\n",
			wantMeta: Metadata{},
			wantBody: "Intro paragraph\n---\nSetext section\n---\nmore\n",
		},
		{
			name:     "header must open on the first line",
			input:    "\n---\ntitle: Late\n---\nbody\n",
			wantMeta: Metadata{},
			wantBody: "\n---\ntitle: Late\n---\nbody\n",
		},
		{
			name:     "byte order mark before header",
			input:    "\ufeff---\ntitle: Marked\n---\nbody\n",
			wantMeta: Metadata{"title": "Marked"},
			wantBody: "body\n",
		},
		{
			name:     "byte order mark without header",
			input:    "\ufeffplain\n",
			wantMeta: Metadata{},
			wantBody: "\ufeffplain\n",
		},
		{
			name:     "crlf line endings",
			input:    "---\r\ntitle: Windows\r\n---\r\nbody\r\n",
			wantMeta: Metadata{"title": "Windows"},
			wantBody: "body\r\n",
		},
		{
			name:     "empty header",
			input:    "---\n---\ncontent",
			wantMeta: Metadata{},
			wantBody: "content",
		},
		{
			name:     "closing delimiter at end of file",
			input:    "---\ntitle: T\n---",
			wantMeta: Metadata{"title": "T"},
			wantBody: "",
		},
		{
			name:     "empty input",
			input:    "",
			wantMeta: Metadata{},
			wantBody: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body := ParseFrontMatter(tc.input)
			if !reflect.DeepEqual(meta, tc.wantMeta) {
				t.Fatalf("metadata: got %#v, want %#v", meta, tc.wantMeta)
			}
			if body != tc.wantBody {
				t.Fatalf("body: got %q, want %q", body, tc.wantBody)
			}
		})
	}
}

func TestParseFrontMatterIsDeterministic(t *testing.T) {
	input := "---\ntitle: A\nsummary: b: c\n---\nbody\n"
	m1, b1 := ParseFrontMatter(input)
	m2, b2 := ParseFrontMatter(input)
	if !reflect.DeepEqual(m1, m2) || b1 != b2 {
		t.Fatalf("parse is not stable: %v %q vs %v %q", m1, b1, m2, b2)
	}
}

func TestFormatFrontMatterRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		meta Metadata
		body string
	}{
		{"typical", Metadata{"title": "Hello", "publishedAt": "2024-06-23", "summary": "A look at x: y"}, "Some *markup*\n"},
		{"empty metadata", Metadata{}, "body only"},
		{"values needing quotes", Metadata{"title": " padded ", "summary": "\"quoted\"", "image": ""}, ""},
		{"body with delimiters", Metadata{"title": "T"}, "---\nnot: metadata\n---\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := FormatFrontMatter(tc.meta, tc.body)
			meta, body := ParseFrontMatter(text)
			if !reflect.DeepEqual(meta, tc.meta) {
				t.Fatalf("metadata: got %#v, want %#v\n%s", meta, tc.meta, text)
			}
			if body != tc.body {
				t.Fatalf("body: got %q, want %q", body, tc.body)
			}
		})
	}
}

func TestFormatFrontMatterKeyOrder(t *testing.T) {
	meta := Metadata{"zeta": "z", "summary": "s", "alpha": "a", "title": "t", "publishedAt": "2024-01-01", "bad:key": "x"}
	got := FormatFrontMatter(meta, "")
	want := "---\ntitle: t\npublishedAt: 2024-01-01\nsummary: s\nalpha: a\nzeta: z\n---\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatFrontMatterDropsMultilineValues(t *testing.T) {
	meta := Metadata{"title": "Hi\npublishedAt: 1999-01-01", "summary": "line\r\nbreak", "image": "/ok.png"}
	text := FormatFrontMatter(meta, "")
	if want := "---\nimage: /ok.png\n---\n"; text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
	parsed, _ := ParseFrontMatter(text)
	if _, ok := parsed["publishedAt"]; ok {
		t.Fatalf("value smuggled a publishedAt key: %#v", parsed)
	}
}
