package schemafile

import (
	"sync/atomic"
	"time"

	"github.com/reoring/skema"
)

// builtinFactories returns the factories available to every definition.
// Each use of a name gets its own factory, so two counters never share
// state.
func builtinFactories() map[string]func() skema.Factory {
	return map[string]func() skema.Factory{
		// RFC 3339 timestamp in UTC
		"now": func() skema.Factory {
			return func() any { return time.Now().UTC().Format(time.RFC3339) }
		},
		"unix": func() skema.Factory {
			return func() any { return time.Now().Unix() }
		},
		// 1, 2, 3, ...
		"counter": func() skema.Factory {
			var n atomic.Int64
			return func() any { return n.Add(1) }
		},
	}
}
