// Package logging holds the zerolog conventions shared across planar.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field that names the emitting component.
const ComponentKey = "cmp"

// Component creates a new logger from the global logger with a component
// identifier.
func Component(name string) zerolog.Logger {
	return Scoped(log.Logger, name)
}

// Scoped derives a component logger from l. The engine packages take their
// logger as a dependency and use this instead of the global one.
func Scoped(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(ComponentKey, name).Logger()
}
