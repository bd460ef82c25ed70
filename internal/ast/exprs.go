package ast

import (
	"coral/internal/source"
)

// Exprs manages allocation of expressions: one header arena plus one
// payload arena per payload shape.
type Exprs struct {
	Arena     *Arena[Expr]
	Leaves    *Arena[ExprLeafData]
	Strings   *Arena[ExprStringData]
	Chains    *Arena[ExprChainData]
	Unaries   *Arena[ExprUnaryData]
	Pairs     *Arena[ExprPairData]
	Ternaries *Arena[ExprTernaryData]
	Lambdas   *Arena[ExprLambdaData]
	Attrs     *Arena[ExprAttrData]
	Applies   *Arena[ExprApplyData]
	Slices    *Arena[ExprSliceData]
	Lists     *Arena[ExprListData]
	Clauses   *Arena[ExprCompClauseData]
	Params    *Arena[ExprParamData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Leaves:    NewArena[ExprLeafData](capHint),
		Strings:   NewArena[ExprStringData](capHint / 4),
		Chains:    NewArena[ExprChainData](capHint / 4),
		Unaries:   NewArena[ExprUnaryData](capHint / 8),
		Pairs:     NewArena[ExprPairData](capHint / 8),
		Ternaries: NewArena[ExprTernaryData](capHint / 16),
		Lambdas:   NewArena[ExprLambdaData](capHint / 16),
		Attrs:     NewArena[ExprAttrData](capHint / 4),
		Applies:   NewArena[ExprApplyData](capHint / 4),
		Slices:    NewArena[ExprSliceData](capHint / 16),
		Lists:     NewArena[ExprListData](capHint / 4),
		Clauses:   NewArena[ExprCompClauseData](capHint / 16),
		Params:    NewArena[ExprParamData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of id, ExprInvalid for NoExprID.
func (e *Exprs) Kind(id ExprID) ExprKind {
	if x := e.Get(id); x != nil {
		return x.Kind
	}
	return ExprInvalid
}

func (e *Exprs) NewLeaf(kind ExprKind, span source.Span, text string) ExprID {
	return e.new(kind, span, e.Leaves.Allocate(ExprLeafData{Text: text}))
}

// Leaf returns the text of an atom other than a string.
func (e *Exprs) Leaf(id ExprID) (*ExprLeafData, bool) {
	x := e.Get(id)
	if x == nil || !x.Kind.IsAtom() || x.Kind == ExprString {
		return nil, false
	}
	return e.Leaves.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewString(span source.Span, parts []StringPart) ExprID {
	return e.new(ExprString, span, e.Strings.Allocate(ExprStringData{Parts: parts}))
}

func (e *Exprs) String(id ExprID) (*ExprStringData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprString {
		return nil, false
	}
	return e.Strings.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewChain(span source.Span, prec Prec, ops []string, operands []Elem) ExprID {
	return e.new(ExprChain, span, e.Chains.Allocate(ExprChainData{Prec: prec, Ops: ops, Operands: operands}))
}

func (e *Exprs) Chain(id ExprID) (*ExprChainData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprChain {
		return nil, false
	}
	return e.Chains.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op string, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(x.Payload)), true
}

// NewPair allocates a walrus, keyword argument, dict entry or 'as' clause.
func (e *Exprs) NewPair(kind ExprKind, span source.Span, left, right ExprID, name string) ExprID {
	return e.new(kind, span, e.Pairs.Allocate(ExprPairData{Left: left, Right: right, Name: name}))
}

func (e *Exprs) Pair(id ExprID) (*ExprPairData, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	switch x.Kind {
	case ExprWalrus, ExprKeyword, ExprKeyValue, ExprAs:
		return e.Pairs.Get(uint32(x.Payload)), true
	default:
		return nil, false
	}
}

func (e *Exprs) NewTernary(span source.Span, body, cond, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Body: body, Cond: cond, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprTernary {
		return nil, false
	}
	return e.Ternaries.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewLambda(span source.Span, params, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprLambda {
		return nil, false
	}
	return e.Lambdas.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewAttr(span source.Span, target ExprID, name string) ExprID {
	return e.new(ExprAttr, span, e.Attrs.Allocate(ExprAttrData{Target: target, Name: name}))
}

func (e *Exprs) Attr(id ExprID) (*ExprAttrData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprAttr {
		return nil, false
	}
	return e.Attrs.Get(uint32(x.Payload)), true
}

// NewApply allocates a call or a subscript.
func (e *Exprs) NewApply(kind ExprKind, span source.Span, target ExprID, args Bracket) ExprID {
	return e.new(kind, span, e.Applies.Allocate(ExprApplyData{Target: target, Args: args}))
}

func (e *Exprs) Apply(id ExprID) (*ExprApplyData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprCall && x.Kind != ExprSubscript) {
		return nil, false
	}
	return e.Applies.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID, hasStep bool) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step, HasStep: hasStep}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(x.Payload)), true
}

// NewList allocates any bracket-backed expression: groups, tuples, lists,
// sets, dicts, comprehensions, parameter and argument lists, with items and
// import names.
func (e *Exprs) NewList(kind ExprKind, span source.Span, items Bracket) ExprID {
	return e.new(kind, span, e.Lists.Allocate(ExprListData{Items: items}))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	switch x.Kind {
	case ExprGroup, ExprTuple, ExprList, ExprSet, ExprDict, ExprComp,
		ExprParams, ExprArgs, ExprWithItems, ExprImports:
		return e.Lists.Get(uint32(x.Payload)), true
	default:
		return nil, false
	}
}

// Bracket returns the bracket owned by id: its own list or, for calls and
// subscripts, the argument list.
func (e *Exprs) Bracket(id ExprID) (*Bracket, bool) {
	if l, ok := e.List(id); ok {
		return &l.Items, true
	}
	if a, ok := e.Apply(id); ok {
		return &a.Args, true
	}
	return nil, false
}

func (e *Exprs) NewCompClause(kind ExprKind, span source.Span, async bool, target, iter ExprID) ExprID {
	return e.new(kind, span, e.Clauses.Allocate(ExprCompClauseData{Async: async, Target: target, Iter: iter}))
}

func (e *Exprs) CompClause(id ExprID) (*ExprCompClauseData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprCompFor && x.Kind != ExprCompIf) {
		return nil, false
	}
	return e.Clauses.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewParam(span source.Span, data ExprParamData) ExprID {
	return e.new(ExprParam, span, e.Params.Allocate(data))
}

func (e *Exprs) Param(id ExprID) (*ExprParamData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprParam {
		return nil, false
	}
	return e.Params.Get(uint32(x.Payload)), true
}
