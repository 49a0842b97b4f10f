// internal/builder/goldmark_extensions.go
package builder

import (
	"bytes"
	"path"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// postLinkTransformer rewrites links that point at another content file
// (e.g. "./other-post.mdx") to that post's generated page.
type postLinkTransformer struct {
	ext []byte
}

func newPostLinkTransformer(ext string) parser.ASTTransformer {
	return &postLinkTransformer{ext: []byte(ext)}
}

func (t *postLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		link.Destination = rewritePostLink(link.Destination, t.ext)
		return ast.WalkContinue, nil
	})
}

// rewritePostLink maps "x.mdx" to the sibling page "../x/". Absolute URLs and
// links to other file types are returned unchanged.
func rewritePostLink(dest, ext []byte) []byte {
	if len(ext) == 0 || !bytes.HasSuffix(dest, ext) || bytes.Contains(dest, []byte("://")) {
		return dest
	}
	slug := path.Base(string(bytes.TrimSuffix(dest, ext)))
	if slug == "." || slug == "/" || slug == "" {
		return dest
	}
	return []byte("../" + slug + "/")
}
