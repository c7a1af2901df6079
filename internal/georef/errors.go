package georef

import (
	"fmt"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
)

// newError builds a *geo.Error of the given kind with a formatted message.
// geo.Error's fields are exported, so construction doesn't need a
// package-private helper inside geo itself — this one just keeps the
// fmt.Sprintf call sites in this package terse.
func newError(kind geo.Kind, format string, args ...any) *geo.Error {
	return &geo.Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
