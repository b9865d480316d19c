package pipeline

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// softBreakSpacer renders soft line breaks as a single space by clearing
// the soft break flag on each text node and inserting a space after it.
type softBreakSpacer struct{}

// Transform implements parser.ASTTransformer.
func (softBreakSpacer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var breaks []*ast.Text

	// Collect first: inserting siblings during the walk would visit them.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		// Code span children are rendered raw and must stay *ast.Text.
		if n.Kind() == ast.KindCodeSpan {
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok && t.SoftLineBreak() && !t.HardLineBreak() {
			breaks = append(breaks, t)
		}
		return ast.WalkContinue, nil
	})

	for _, t := range breaks {
		parent := t.Parent()
		if parent == nil {
			continue
		}
		t.SetSoftLineBreak(false)
		parent.InsertAfter(parent, t, ast.NewString([]byte(" ")))
	}
}
