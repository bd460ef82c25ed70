package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes how the bytes of a file were obtained and cleaned up.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (stdin, tests, library callers).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 byte order mark was stripped.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose \r\n line endings were rewritten to \n.
	FileNormalizedCRLF
	// FileMissingNewline marks a file whose last line had no terminating newline.
	FileMissingNewline
)

// File captures metadata and normalized content of one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
