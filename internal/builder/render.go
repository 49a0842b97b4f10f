// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var htmlSanitizer = bluemonday.UGCPolicy()

// newMarkdown builds the goldmark engine used for post bodies. ext is the
// content file extension, used to rewrite links between posts.
func newMarkdown(ext string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newPostLinkTransformer(ext), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// renderBody converts a post body to HTML and sanitizes it unless the
// -unsafe flag is set.
func renderBody(md goldmark.Markdown, body string, opts BuildOptions) (string, error) {
	var htmlBuffer bytes.Buffer
	if err := md.Convert([]byte(body), &htmlBuffer); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	if opts.Unsafe {
		return htmlBuffer.String(), nil
	}
	return string(htmlSanitizer.SanitizeBytes(htmlBuffer.Bytes())), nil
}
