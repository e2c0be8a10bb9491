package segment

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

// Flatten renders markdown to the plain prose a reader would speak: code
// blocks and raw HTML are dropped, link and emphasis text is kept, block
// boundaries become spaces. The result is NFC-normalized with whitespace
// collapsed. Plain text passes through unchanged apart from normalization.
func Flatten(document string) string {
	src := []byte(norm.NFC.String(document))
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindRawHTML, ast.KindAutoLink:
			return ast.WalkSkipChildren, nil
		case ast.KindText:
			t := n.(*ast.Text)
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case ast.KindString:
			b.Write(n.(*ast.String).Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}
