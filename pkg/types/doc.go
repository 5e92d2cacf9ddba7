// Package types defines the stable error taxonomy shared by the oatkit
// packages.
//
// Callers branch on intent rather than text: every structural failure wraps
// one of the sentinels below, so errors.Is(err, types.ErrMissingOatDataSymbol)
// distinguishes "not an OAT file at all" from "wrong vendor mode"
// (ErrSuspiciousLocationLength) or "truncated file" (io.ErrUnexpectedEOF,
// ErrTruncated).
//
// Diagnostic records issues that do not fail a parse; oat.File.Diagnostics
// carries them and FormatCompact prints them one per line.
//
// This package has no dependencies beyond the standard library.
package types
