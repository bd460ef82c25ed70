package driver

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the change from original to formatted with three
// lines of context. It is empty when the texts are equal.
func UnifiedDiff(path string, original, formatted []byte) (string, error) {
	if string(original) == string(formatted) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(formatted)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}
