package sumfile

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying each failure kind. Callers match with
// errors.Is; the [Error] type carries the structured context.
var (
	// ErrAlgorithmUnavailable is returned when a digest algorithm is not
	// recognized or not compiled in.
	ErrAlgorithmUnavailable = errors.New("sumfile: digest algorithm unavailable")

	// ErrContradiction is returned when a registration would record a
	// digest that differs from the one already listed for the same name.
	ErrContradiction = errors.New("sumfile: digest contradicts existing entry")

	// ErrMismatch is returned when a file's current content does not match
	// its recorded digest.
	ErrMismatch = errors.New("sumfile: digest did not validate")

	// ErrManifestInvalid is returned when a manifest file cannot be parsed.
	ErrManifestInvalid = errors.New("sumfile: invalid manifest")

	// ErrManifestMissing is returned when a required manifest file does
	// not exist.
	ErrManifestMissing = errors.New("sumfile: manifest missing")

	// ErrManifestExists is returned when a manifest file already exists
	// and the caller required a fresh one.
	ErrManifestExists = errors.New("sumfile: manifest already exists")

	// ErrEntryMissing is returned when a name is not listed in a manifest.
	ErrEntryMissing = errors.New("sumfile: entry missing from manifest")

	// ErrEntryExists is returned when a name is already listed and the
	// caller required it not to be.
	ErrEntryExists = errors.New("sumfile: entry already exists")

	// ErrAmbiguousEntry is returned when a manifest lists a name more than
	// once. An ambiguous manifest is never extended or trusted, regardless
	// of whether the duplicate digests agree.
	ErrAmbiguousEntry = errors.New("sumfile: multiple entries for one name")

	// ErrPathNotRelative is returned when a target path does not resolve
	// to a descendant of its root.
	ErrPathNotRelative = errors.New("sumfile: path not relative to root")
)

// Error is the structured error returned by manifest operations. Kind is
// one of the package sentinels; the remaining fields attribute the failure.
// Fields that do not apply are empty.
type Error struct {
	Kind     error  // sentinel identifying the failure kind
	Key      string // entry name, or algorithm name for ErrAlgorithmUnavailable
	Path     string // manifest path, when one is involved
	Expected string // recorded digest, for contradictions and mismatches
	Actual   string // computed digest, for contradictions and mismatches
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Key != "" {
		msg += fmt.Sprintf(": %q", e.Key)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (manifest %s)", e.Path)
	}
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Actual)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }
