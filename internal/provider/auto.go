// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Auto is a composite provider holding an ordered priority list of
// concrete providers. It tries each in order and returns the first found
// result with its provider name rewritten to "auto:<actual>". An
// erroring provider is skipped, not fatal.
type Auto struct {
	order []Provider
}

// NewAuto builds the composite from providers in priority order.
func NewAuto(order ...Provider) *Auto {
	return &Auto{order: order}
}

// Name returns the composite's registry name.
func (a *Auto) Name() string { return "auto" }

// Lookup tries each provider in priority order until one finds the
// entry. When none does, the result is a clean miss attributed to
// "auto".
func (a *Auto) Lookup(ctx context.Context, entry types.EntryMetadata) types.LookupResult {
	for _, p := range a.order {
		result := p.Lookup(ctx, entry)
		if result.Found {
			result.Provider = "auto:" + p.Name()
			return result
		}
	}
	return notFoundResult("auto")
}
