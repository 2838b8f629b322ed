package morph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for empty, whitespace-only, over-long or
	// non-UTF-8 tokens and for malformed dictionary items.
	ErrInvalidInput = errors.New("morph: invalid input")

	// ErrDuplicateItem is returned when an item with the same ID is already
	// in the lexicon.
	ErrDuplicateItem = errors.New("morph: duplicate dictionary item")

	// ErrGraphConstruction is returned when a morphotactics graph fails
	// validation. No engine is produced.
	ErrGraphConstruction = errors.New("morph: invalid morphotactics graph")

	// ErrResourceLoad is returned when a lexicon or rule resource is
	// unreadable or malformed.
	ErrResourceLoad = errors.New("morph: resource load failed")
)

// LoadError describes a malformed line in a lexicon resource.
// It matches ErrResourceLoad with errors.Is.
type LoadError struct {
	Path string // resource name, "" for in-memory data
	Line int    // 1-based line number, 0 when not line specific
	Msg  string
}

func (e *LoadError) Error() string {
	name := e.Path
	if name == "" {
		name = "<lexicon>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("morph: %s:%d: %s", name, e.Line, e.Msg)
	}
	return fmt.Sprintf("morph: %s: %s", name, e.Msg)
}

func (e *LoadError) Unwrap() error { return ErrResourceLoad }
