// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

// Effective is the set of override values resolved for one service.
// It is recomputed for every reconciliation and never persisted.
type Effective struct {
	Deps          *string
	StartOnCreate *bool
	Account       *Account
}

// mergeField resolves one override field: the service-scope value when
// present, else the document-scope value, else nil. Neither block is
// mutated.
func mergeField[T any](local, global *Overrides, pick func(*Overrides) *T) *T {
	if local != nil {
		if v := pick(local); v != nil {
			return v
		}
	}
	if global != nil {
		return pick(global)
	}
	return nil
}

// MergeOverrides resolves the two-level precedence field by field. A
// service may inherit its account from the document scope while
// overriding its dependencies locally. Account is atomic: whichever
// scope supplies it does so wholesale, there is no merging inside it.
func MergeOverrides(local, global *Overrides) Effective {
	return Effective{
		Deps:          mergeField(local, global, func(o *Overrides) *string { return o.Deps }),
		StartOnCreate: mergeField(local, global, func(o *Overrides) *bool { return o.StartOnCreate }),
		Account:       mergeField(local, global, func(o *Overrides) *Account { return o.Account }),
	}
}
