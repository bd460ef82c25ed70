package ast

import (
	"coral/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprName
	ExprNumber
	ExprString
	ExprConst    // None, True, False
	ExprEllipsis // ...
	ExprShell    // xonsh substitution or environment variable
	ExprChain    // operator chain at one precedence level
	ExprUnary    // not x, -x, *x, **x, await x, yield x, yield from x
	ExprWalrus   // x := y
	ExprKeyword  // name=value in calls and class bases
	ExprKeyValue // key: value in dicts
	ExprAs       // x as y in with items, imports and patterns
	ExprTernary
	ExprLambda
	ExprAttr
	ExprCall
	ExprSubscript
	ExprSlice
	ExprGroup // (x)
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprComp    // comprehension or generator; element then clauses
	ExprCompFor // [async] for target in iter
	ExprCompIf  // if cond
	ExprParams  // def/lambda parameter list
	ExprParam
	ExprArgs      // class bases
	ExprWithItems // with-statement items
	ExprImports   // names of an import statement
)

var exprKindNames = [...]string{
	ExprInvalid:   "Invalid",
	ExprName:      "Name",
	ExprNumber:    "Number",
	ExprString:    "String",
	ExprConst:     "Const",
	ExprEllipsis:  "Ellipsis",
	ExprShell:     "Shell",
	ExprChain:     "Chain",
	ExprUnary:     "Unary",
	ExprWalrus:    "Walrus",
	ExprKeyword:   "Keyword",
	ExprKeyValue:  "KeyValue",
	ExprAs:        "As",
	ExprTernary:   "Ternary",
	ExprLambda:    "Lambda",
	ExprAttr:      "Attr",
	ExprCall:      "Call",
	ExprSubscript: "Subscript",
	ExprSlice:     "Slice",
	ExprGroup:     "Group",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprComp:      "Comp",
	ExprCompFor:   "CompFor",
	ExprCompIf:    "CompIf",
	ExprParams:    "Params",
	ExprParam:     "Param",
	ExprArgs:      "Args",
	ExprWithItems: "WithItems",
	ExprImports:   "Imports",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// IsAtom reports whether the kind renders as a single unsplittable token.
func (k ExprKind) IsAtom() bool {
	switch k {
	case ExprName, ExprNumber, ExprString, ExprConst, ExprEllipsis, ExprShell:
		return true
	default:
		return false
	}
}

// Prec is an operator precedence level, lowest first.
type Prec uint8

const (
	PrecNone Prec = iota
	PrecLambda
	PrecTernary
	PrecOr
	PrecAnd
	PrecNot
	PrecCompare
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecShift
	PrecArith
	PrecTerm
	PrecUnary
	PrecPower
	PrecAwait
	PrecAtom
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
