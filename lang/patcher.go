package lang

import (
	"log/slog"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/exprx/log"
)

// nullName is accepted as a spelling of nil unless an expression attaches a
// value under the same name.
const nullName = "null"

// nullPatcher rewrites unbound "null" identifiers into nil literals.
type nullPatcher struct {
	bound  func(string) bool
	logger log.Logger
}

// Visit implements ast.Visitor for nullPatcher.
func (p *nullPatcher) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok || ident.Value != nullName || p.bound(nullName) {
		return
	}

	ast.Patch(node, &ast.NilNode{})

	p.logger.Trace("patch null",
		slog.String("identifier", ident.Value))
}
