package util

import (
	"path/filepath"
	"testing"
)

func TestComputeBaseHref(t *testing.T) {
	cases := map[string]string{
		"index.html":              "",
		"blog/index.html":         "../",
		"blog/my-post/index.html": "../../",
		"a/b/c/index.html":        "../../../",
	}
	for rel, want := range cases {
		if got := ComputeBaseHref(filepath.FromSlash(rel)); got != want {
			t.Errorf("ComputeBaseHref(%q) = %q, want %q", rel, got, want)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	cases := map[string]string{
		"plain":                "plain",
		"Notes & Essays":       "Notes &amp; Essays",
		"<b>\"quoted\"</b>":    "&lt;b&gt;&#34;quoted&#34;&lt;/b&gt;",
		"https://x.dev/?a=1&b": "https://x.dev/?a=1&amp;b",
	}
	for in, want := range cases {
		if got := EscapeXML(in); got != want {
			t.Errorf("EscapeXML(%q) = %q, want %q", in, got, want)
		}
	}
}
