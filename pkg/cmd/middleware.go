package cmd

// Middleware wraps a callback (e.g. logging, rate limiting).
type Middleware func(Callback) Callback

// Apply wraps cb with mws; the first middleware in the list is the outermost.
func Apply(cb Callback, mws ...Middleware) Callback {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			cb = mws[i](cb)
		}
	}
	return cb
}
