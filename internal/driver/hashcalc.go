package driver

import (
	"crypto/sha256"
	"fmt"

	"coral/internal/format"
	"coral/internal/project"
	"coral/internal/version"
)

// cacheKey digests the raw input together with everything that can change
// the output for it.
func cacheKey(data []byte, opts FormatOptions) project.Digest {
	o := opts.Options
	salt := fmt.Sprintf("coral %s|width=%d|newline=%t|skip=%d|safe=%t",
		version.Version, o.LineWidth, o.TrailingNewline, o.Skip, opts.Safe)
	return project.Combine(sha256.Sum256(data), []byte(salt))
}

// effectiveOptions fills in the defaults format.Text would apply, so equal
// runs share a key.
func effectiveOptions(o format.Options) format.Options {
	if o.LineWidth <= 0 {
		o.LineWidth = format.DefaultLineWidth
	}
	return o
}
