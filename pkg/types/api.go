package types

import "errors"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat   ErrKind = iota // not an ELF/OAT container, or a header we cannot interpret
	ErrKindCorrupt                 // structural inconsistency (bad sizes/offsets/lengths)
	ErrKindNotFound                // a required file or record is missing
	ErrKindState                   // invalid operation for the current state
	ErrKindBackend                 // a database query failed
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindNotFound:
		return "not found"
	case ErrKindState:
		return "state"
	case ErrKindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (wrapped) by the oat, dexdb and dexdiff packages.
var (
	// ErrNotELF indicates the source could not be parsed as an ELF container.
	ErrNotELF = &Error{Kind: ErrKindFormat, Msg: "not an ELF file"}
	// ErrMissingBaseOffset indicates there is no PT_PHDR program header.
	ErrMissingBaseOffset = &Error{Kind: ErrKindFormat, Msg: "missing program header segment"}
	// ErrMissingOatDataSymbol indicates no symbol table carries "oatdata".
	ErrMissingOatDataSymbol = &Error{Kind: ErrKindFormat, Msg: "missing oatdata symbol"}
	// ErrMalformedVersion indicates the OAT version field is not numeric.
	ErrMalformedVersion = &Error{Kind: ErrKindFormat, Msg: "malformed oat version"}
	// ErrSuspiciousLocationLength indicates a dex location longer than the
	// sanity limit, usually a misaligned chain or the wrong vendor mode.
	ErrSuspiciousLocationLength = &Error{Kind: ErrKindCorrupt, Msg: "suspicious dex location length"}
	// ErrInvalidDexSize indicates a declared DEX size that is negative when
	// read as a signed 32-bit value.
	ErrInvalidDexSize = &Error{Kind: ErrKindCorrupt, Msg: "invalid dex size"}
	// ErrBadDexMagic indicates the embedded image does not start with a DEX magic.
	ErrBadDexMagic = &Error{Kind: ErrKindCorrupt, Msg: "bad dex magic"}
	// ErrCorrupt indicates a non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt oat structure"}
	// ErrTruncated indicates a structure extends past the end of the source.
	ErrTruncated = &Error{Kind: ErrKindCorrupt, Msg: "truncated oat file"}
	// ErrDatabaseNotFound indicates a safe-mode open of a missing database.
	ErrDatabaseNotFound = &Error{Kind: ErrKindNotFound, Msg: "database file not found"}
	// ErrQueryFailed indicates a DEX database query reported failure.
	ErrQueryFailed = &Error{Kind: ErrKindBackend, Msg: "database query failed"}
	// ErrClosed indicates use of a closed handle.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "handle is closed"}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
