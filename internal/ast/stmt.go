package ast

import (
	"coral/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr
	StmtAssign   // =, augmented, annotated assignment and 'type' aliases
	StmtKeyword  // pass break continue return del raise assert global nonlocal
	StmtImport   // import and from-import
	StmtShell    // opaque shell command line
	StmtCompound // if while for try with def class match case
)

var stmtKindNames = [...]string{
	StmtInvalid:  "Invalid",
	StmtExpr:     "Expr",
	StmtAssign:   "Assign",
	StmtKeyword:  "Keyword",
	StmtImport:   "Import",
	StmtShell:    "Shell",
	StmtCompound: "Compound",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Unknown"
}

// Stmt is a statement header plus its trivia. Blank is the number of blank
// lines directly above the statement's first line; each leading comment
// carries its own count.
type Stmt struct {
	Kind     StmtKind
	Span     source.Span
	Payload  PayloadID
	Blank    int
	Leading  []Comment
	Trailing *Comment
}

type StmtExprData struct {
	Value ExprID
}

type StmtAssignData struct {
	Keyword    string   // "type" for aliases
	Targets    []ExprID // a = b = c has two targets
	Op         string   // "=" or an augmented operator
	Annotation ExprID
	Value      ExprID // NoExprID for a bare annotation
}

type StmtKeywordData struct {
	Keyword string
	Value   ExprID   // return/del/raise/assert operand
	Extra   ExprID   // raise ... from Extra, assert ..., Extra
	Names   []string // global/nonlocal
}

type StmtImportData struct {
	From   bool
	Module string // dotted module of a from-import, leading dots included
	Names  ExprID // ExprImports
}

type StmtShellData struct {
	Text string
}

type Decorator struct {
	Value    ExprID
	Span     source.Span
	Blank    int
	Leading  []Comment
	Trailing *Comment
}

// Block is an indented suite. Dangling holds own-line comments after the
// last statement that are still indented as part of the block.
type Block struct {
	Stmts    []StmtID
	Dangling []Comment
}

// Clause is one header + suite of a compound statement. Field use depends
// on Keyword:
//
//	if/elif/while   Test
//	for             Target in Test
//	except/except*  Test as Name
//	with            Test (ExprWithItems)
//	def             Name Params -> Returns
//	class           Name Params (ExprArgs, optional)
//	match           Test
//	case            Test if Target
type Clause struct {
	Keyword  string
	Async    bool
	Span     source.Span
	Blank    int
	Leading  []Comment
	Trailing *Comment
	Test     ExprID
	Target   ExprID
	Name     string
	Params   ExprID
	Returns  ExprID
	Body     Block
}

type StmtCompoundData struct {
	Decorators []Decorator
	Clauses    []Clause
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Exprs     *Arena[StmtExprData]
	Assigns   *Arena[StmtAssignData]
	Keywords  *Arena[StmtKeywordData]
	Imports   *Arena[StmtImportData]
	Shells    *Arena[StmtShellData]
	Compounds *Arena[StmtCompoundData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Exprs:     NewArena[StmtExprData](capHint / 2),
		Assigns:   NewArena[StmtAssignData](capHint / 2),
		Keywords:  NewArena[StmtKeywordData](capHint / 4),
		Imports:   NewArena[StmtImportData](capHint / 8),
		Shells:    NewArena[StmtShellData](capHint / 8),
		Compounds: NewArena[StmtCompoundData](capHint / 4),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Value: value}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewAssign(span source.Span, data StmtAssignData) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(data))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewKeyword(span source.Span, data StmtKeywordData) StmtID {
	return s.new(StmtKeyword, span, s.Keywords.Allocate(data))
}

func (s *Stmts) Keyword(id StmtID) (*StmtKeywordData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtKeyword {
		return nil, false
	}
	return s.Keywords.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewImport(span source.Span, data StmtImportData) StmtID {
	return s.new(StmtImport, span, s.Imports.Allocate(data))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewShell(span source.Span, text string) StmtID {
	return s.new(StmtShell, span, s.Shells.Allocate(StmtShellData{Text: text}))
}

func (s *Stmts) Shell(id StmtID) (*StmtShellData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtShell {
		return nil, false
	}
	return s.Shells.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewCompound(span source.Span, data StmtCompoundData) StmtID {
	return s.new(StmtCompound, span, s.Compounds.Allocate(data))
}

func (s *Stmts) Compound(id StmtID) (*StmtCompoundData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtCompound {
		return nil, false
	}
	return s.Compounds.Get(uint32(st.Payload)), true
}

// IsDefOrClass reports whether id is a (possibly decorated) function or
// class definition.
func (s *Stmts) IsDefOrClass(id StmtID) bool {
	c, ok := s.Compound(id)
	if !ok || len(c.Clauses) == 0 {
		return false
	}
	kw := c.Clauses[0].Keyword
	return kw == "def" || kw == "class"
}
