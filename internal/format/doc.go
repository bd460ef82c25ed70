// Package format prints a normalized syntax tree back to source text.
//
// Every statement header is laid out by choosing among candidate
// renderings: flat, wrapped inside its brackets, or exploded one element
// per line. Candidates are ranked by columns past the line width, then by
// line count, then by how closely they keep the shape the source already
// had. Lines only break inside brackets, so a header that needs to break
// outside one gets parentheses of its own where the grammar allows it.
//
// Entry points are Text and File; Parse and Print expose the two halves.
package format
