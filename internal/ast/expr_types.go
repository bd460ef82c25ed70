package ast

import (
	"coral/internal/source"
)

// ExprLeafData holds the source text of an atom.
type ExprLeafData struct {
	Text string
}

// StringPart is one literal of an implicit concatenation.
type StringPart struct {
	Text string
	Span source.Span
}

type ExprStringData struct {
	Parts []StringPart
}

// ExprChainData is a flattened run of binary operators of equal precedence:
// Operands[0] Ops[0] Operands[1] Ops[1] ... Operand trivia lives on the Elem.
type ExprChainData struct {
	Prec     Prec
	Ops      []string
	Operands []Elem
}

type ExprUnaryData struct {
	Op      string
	Operand ExprID // NoExprID for a bare yield
}

// ExprPairData backs walrus, keyword arguments, dict entries and 'as' clauses.
type ExprPairData struct {
	Left  ExprID
	Right ExprID
	// Name is the keyword of ExprKeyword; Left is unused then.
	Name string
}

type ExprTernaryData struct {
	Body ExprID
	Cond ExprID
	Else ExprID
}

type ExprLambdaData struct {
	Params ExprID
	Body   ExprID
}

type ExprAttrData struct {
	Target ExprID
	Name   string
}

// ExprApplyData backs calls and subscripts: Target followed by a bracket.
type ExprApplyData struct {
	Target ExprID
	Args   Bracket
}

type ExprSliceData struct {
	Lower   ExprID
	Upper   ExprID
	Step    ExprID
	HasStep bool // a second ':' was written
}

type ExprListData struct {
	Items Bracket
}

type ExprCompClauseData struct {
	Async  bool
	Target ExprID
	Iter   ExprID // also the condition of ExprCompIf
}

// ExprParamData is a parameter; Star is "", "*" or "**". A bare '*' has no
// Name, and the positional-only marker is Name "/".
type ExprParamData struct {
	Star       string
	Name       string
	Annotation ExprID
	Default    ExprID
}
