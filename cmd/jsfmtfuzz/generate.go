package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/arjunmenon/jsfmt/ast"
)

var identNames = []string{"a", "b", "count", "value", "longIdentifierName", "x1", "y"}

// randomProgram builds a Program with between 1 and maxStmts top-level statements, keeping trees
// shallow (at most one level of nested expression) so each generated program stays small, per
// the brief in SPEC_FULL.md's §2 addendum.
func randomProgram(rng *rand.Rand, maxStmts int) *ast.Program {
	n := 1 + rng.IntN(maxStmts)
	stmts := make([]ast.Stmt, n)
	for i := range stmts {
		stmts[i] = randomStmt(rng)
	}
	return &ast.Program{Stmts: stmts}
}

func randomStmt(rng *rand.Rand) ast.Stmt {
	switch rng.IntN(3) {
	case 0:
		return randomVarDecl(rng)
	case 1:
		return &ast.ExprStmt{Expr: &ast.AssignExpr{
			Target: &ast.Ident{Name: randomIdentName(rng, rng.IntN(len(identNames)))},
			Value:  randomExpr(rng, 1),
		}}
	default:
		return &ast.ExprStmt{Expr: randomExpr(rng, 1)}
	}
}

func randomVarDecl(rng *rand.Rand) *ast.VarDecl {
	kind := ast.DeclConst
	if rng.IntN(2) == 0 {
		kind = ast.DeclLet
	}
	n := 1 + rng.IntN(3)
	decls := make([]ast.Declarator, n)
	for i := range decls {
		decl := ast.Declarator{Name: randomIdentName(rng, i)}
		if rng.IntN(4) != 0 { // mostly initialized, occasionally bare (only valid for `let`)
			decl.Init = randomExpr(rng, 1)
		}
		decls[i] = decl
	}
	return &ast.VarDecl{Kind: kind, Declarators: decls}
}

func randomExpr(rng *rand.Rand, depth int) ast.Expr {
	choices := 3
	if depth > 0 {
		choices = 4 // allow one more level of array nesting only while depth budget remains
	}
	switch rng.IntN(choices) {
	case 0:
		return &ast.Ident{Name: randomIdentName(rng, rng.IntN(len(identNames)))}
	case 1:
		return &ast.NumberLit{Literal: fmt.Sprintf("%d", rng.IntN(100000))}
	case 2:
		return &ast.StringLit{Raw: fmt.Sprintf("%q", identNames[rng.IntN(len(identNames))])}
	default:
		return randomArrayLit(rng, depth-1)
	}
}

func randomArrayLit(rng *rand.Rand, depth int) *ast.ArrayLit {
	n := rng.IntN(5)
	elems := make([]ast.Expr, n)
	for i := range elems {
		if depth <= 0 {
			elems[i] = &ast.NumberLit{Literal: fmt.Sprintf("%d", rng.IntN(1000))}
			continue
		}
		elems[i] = randomExpr(rng, depth)
	}
	return &ast.ArrayLit{Elements: elems}
}

func randomIdentName(rng *rand.Rand, salt int) string {
	return fmt.Sprintf("%s%d", identNames[salt%len(identNames)], salt)
}
