package diag

import (
	"testing"

	"coral/internal/source"
)

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	r.Report(SynUnexpectedToken, SevError, sp, "unexpected ')'", nil)
	r.Report(SynUnexpectedToken, SevError, sp, "unexpected ')'", nil)
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 5, End: 6}, "unexpected ')'", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}

	var nilReporter *DedupReporter
	nilReporter.Report(SynUnexpectedToken, SevError, sp, "ignored", nil)
}

func TestWithNote(t *testing.T) {
	d := NewError(LexUnclosedBracket, source.Span{Start: 0, End: 1}, "'(' was never closed").
		WithNote(source.Span{Start: 9, End: 9}, "input ends here")
	if len(d.Notes) != 1 || d.Notes[0].Msg != "input ends here" {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
}
