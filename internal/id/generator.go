package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Kind is a short prefix telling apart what an ID was issued for.
type Kind string

const (
	Event   Kind = "ev"  // WebSocket messages
	Request Kind = "req" // HTTP requests, echoed in X-Request-Id
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID prefixed with its kind, e.g. "ev_3kq0a7x".
func Generate(kind Kind) string {
	return string(kind) + "_" + generator.MustGenerate()
}
