package httpapi

import "go.uber.org/zap"

// Options controls HTTP API runtime behavior.
//
// Keep it small: this service is a normalization pipeline, not a framework.
type Options struct {
	// Logger receives the access log and internal-error reports. Defaults
	// to a no-op logger so tests stay quiet.
	Logger *zap.Logger

	// MaxBodyBytes caps request bodies. Share links and form payloads are
	// tiny; anything larger is abuse.
	MaxBodyBytes int64
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 64 << 10
	}
	return o
}
