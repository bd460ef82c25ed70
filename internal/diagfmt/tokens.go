package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"coral/internal/source"
	"coral/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Indent  int         `json:"indent,omitempty"`
	Blank   int         `json:"blank,omitempty"`
	OwnLine bool        `json:"own_line,omitempty"`
}

// FormatTokensPretty prints one token per line with its position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if tok.OwnLine {
			fmt.Fprintf(w, " (own line, indent %d", tok.Indent)
			if tok.Blank > 0 {
				fmt.Fprintf(w, ", %d blank", tok.Blank)
			}
			fmt.Fprint(w, ")")
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
		if tok.OwnLine {
			to.OwnLine, to.Indent, to.Blank = true, tok.Indent, tok.Blank
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
