package source

import (
	"bytes"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 byte order mark and rewrites \r\n (and lone \r)
// line endings to \n. The returned flags describe what was changed.
func Normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content := raw
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		flags |= FileHadBOM
	}
	if bytes.IndexByte(content, '\r') >= 0 {
		out := make([]byte, 0, len(content))
		for i := 0; i < len(content); i++ {
			if content[i] != '\r' {
				out = append(out, content[i])
				continue
			}
			out = append(out, '\n')
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
		}
		content = out
		flags |= FileNormalizedCRLF
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		flags |= FileMissingNewline
	}
	return content, flags
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of newlines strictly before off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
