package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                 Code = 1000
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedTriple   Code = 1003
	LexBadNumber            Code = 1004
	LexInconsistentTabs     Code = 1005
	LexBadDedent            Code = 1006
	LexUnexpectedIndent     Code = 1007
	LexUnclosedBracket      Code = 1008
	LexUnmatchedBracket     Code = 1009
	LexBadContinuation      Code = 1010
	LexUnterminatedFragment Code = 1011
	LexBadFString           Code = 1012

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectColon      Code = 2003
	SynExpectIdentifier Code = 2004
	SynExpectBlock      Code = 2005
	SynExpectNewline    Code = 2006
	SynUnclosedParen    Code = 2007
	SynUnclosedBracket  Code = 2008
	SynUnclosedBrace    Code = 2009
	SynBadAssignTarget  Code = 2010
	SynBadDecorator     Code = 2011
	SynOrphanClause     Code = 2012
	SynTooDeep          Code = 2013

	// Formatting
	FmtInfo          Code = 3000
	FmtWouldChange   Code = 3001
	FmtUnstable      Code = 3002
	FmtNotIdempotent Code = 3003

	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	ProjInfo         Code = 5000
	ProjBadConfig    Code = 5001
	ProjUnknownKey   Code = 5002
	ProjBadLineWidth Code = 5003

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexInfo:                 "Lexical information",
		LexUnknownChar:          "Unknown character",
		LexUnterminatedString:   "Unterminated string literal",
		LexUnterminatedTriple:   "Unterminated triple-quoted string",
		LexBadNumber:            "Bad number literal",
		LexInconsistentTabs:     "Inconsistent use of tabs and spaces in indentation",
		LexBadDedent:            "Unindent does not match any outer indentation level",
		LexUnexpectedIndent:     "Unexpected indent",
		LexUnclosedBracket:      "Unexpected end of input inside brackets",
		LexUnmatchedBracket:     "Unmatched closing bracket",
		LexBadContinuation:      "Unexpected character after line continuation",
		LexUnterminatedFragment: "Unterminated shell substitution",
		LexBadFString:           "Invalid f-string replacement field",
		SynInfo:                 "Syntax information",
		SynUnexpectedToken:      "Unexpected token",
		SynExpectExpression:     "Expected expression",
		SynExpectColon:          "Expected ':'",
		SynExpectIdentifier:     "Expected identifier",
		SynExpectBlock:          "Expected an indented block",
		SynExpectNewline:        "Expected end of line",
		SynUnclosedParen:        "Unclosed parenthesis",
		SynUnclosedBracket:      "Unclosed bracket",
		SynUnclosedBrace:        "Unclosed brace",
		SynBadAssignTarget:      "Invalid assignment target",
		SynBadDecorator:         "Decorator must precede def or class",
		SynOrphanClause:         "Clause without matching statement",
		SynTooDeep:              "Structure too deeply nested",
		FmtInfo:                 "Formatting information",
		FmtWouldChange:          "File would be reformatted",
		FmtUnstable:             "Formatting changed the program structure",
		FmtNotIdempotent:        "Formatting is not idempotent",
		IOLoadFileError:         "I/O load file error",
		IOWriteFileError:        "I/O write file error",
		ProjInfo:                "Project information",
		ProjBadConfig:           "Invalid configuration file",
		ProjUnknownKey:          "Unknown configuration key",
		ProjBadLineWidth:        "Invalid line width",
		ObsInfo:                 "Observability information",
		ObsTimings:              "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
