package domain

import "errors"

// Kind classifies a joker failure. The set is closed.
type Kind uint8

const (
	KindUnknown Kind = iota
	ConfigUnavailable
	ConfigCorrupt
	ConfigUnwritable
	InvalidAddress
	InvalidName
	UnknownDaemon
	ConnectionFailed
	MalformedPath
	ArtifactUnreadable
	ManifestUnreadable
	TransferInterrupted
	NotImplemented
)

var kindNames = map[Kind]string{
	ConfigUnavailable:   "config unavailable",
	ConfigCorrupt:       "config corrupt",
	ConfigUnwritable:    "config unwritable",
	InvalidAddress:      "invalid address",
	InvalidName:         "invalid name",
	UnknownDaemon:       "unknown daemon",
	ConnectionFailed:    "connection failed",
	MalformedPath:       "malformed path",
	ArtifactUnreadable:  "artifact unreadable",
	ManifestUnreadable:  "manifest unreadable",
	TransferInterrupted: "transfer interrupted",
	NotImplemented:      "not implemented",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is the error type returned across joker's packages.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "joker: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same kind, so the Err*
// sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrConfigUnavailable   = &Error{Kind: ConfigUnavailable}
	ErrConfigCorrupt       = &Error{Kind: ConfigCorrupt}
	ErrConfigUnwritable    = &Error{Kind: ConfigUnwritable}
	ErrInvalidAddress      = &Error{Kind: InvalidAddress}
	ErrInvalidName         = &Error{Kind: InvalidName}
	ErrUnknownDaemon       = &Error{Kind: UnknownDaemon}
	ErrConnectionFailed    = &Error{Kind: ConnectionFailed}
	ErrMalformedPath       = &Error{Kind: MalformedPath}
	ErrArtifactUnreadable  = &Error{Kind: ArtifactUnreadable}
	ErrManifestUnreadable  = &Error{Kind: ManifestUnreadable}
	ErrTransferInterrupted = &Error{Kind: TransferInterrupted}
	ErrNotImplemented      = &Error{Kind: NotImplemented}
)

// New returns an *Error of the given kind with no underlying cause.
func New(kind Kind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap attaches kind and detail to a non-nil cause.
func Wrap(kind Kind, detail string, err error) error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
