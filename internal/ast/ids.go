package ast

type (
	FileID    uint32
	StmtID    uint32
	ExprID    uint32
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)
