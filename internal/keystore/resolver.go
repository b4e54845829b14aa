package keystore

// Resolver selects the API credential to use. Priority: a key saved by
// explicit user action in the store, then the environment-provided
// default. The store is injected so tests can use fakes.
type Resolver struct {
	store      Store
	envDefault string
}

// NewResolver creates a resolver over the given store and environment
// default (may be empty).
func NewResolver(store Store, envDefault string) *Resolver {
	return &Resolver{store: store, envDefault: envDefault}
}

// Resolve returns the credential to use, or "" when neither source has
// a value. It never fails: a store read error falls through to the
// environment default so a corrupt credential file cannot block the
// user entirely.
func (r *Resolver) Resolve() string {
	if r.store != nil {
		if key, err := r.store.Get(); err == nil && key != "" {
			return key
		}
	}
	return r.envDefault
}

// IsConfigured reports whether any credential is available.
func (r *Resolver) IsConfigured() bool {
	return len(r.Resolve()) > 0
}
