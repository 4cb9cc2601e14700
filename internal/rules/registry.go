package rules

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// Registry is the read-only resource type policy table.
// It is built once at startup and may be shared freely between goroutines.
type Registry struct {
	policies map[domain.ResourceTypeID]domain.ResourceTypePolicy
	order    []domain.ResourceTypeID
	digest   string
}

// NewRegistry builds a registry from explicit policies.
// Tests use it to supply synthetic rule data.
func NewRegistry(policies ...domain.ResourceTypePolicy) (*Registry, error) {
	r := &Registry{
		policies: make(map[domain.ResourceTypeID]domain.ResourceTypePolicy, len(policies)),
		order:    make([]domain.ResourceTypeID, 0, len(policies)),
	}

	for _, p := range policies {
		if err := validatePolicy(p); err != nil {
			return nil, err
		}
		if _, exists := r.policies[p.ResourceType]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateResourceType, p.ResourceType)
		}
		r.policies[p.ResourceType] = p
		r.order = append(r.order, p.ResourceType)
	}

	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	r.digest = digestPolicies(r.order, r.policies)
	return r, nil
}

// MustNewRegistry is NewRegistry for fixed, known-good policy sets
func MustNewRegistry(policies ...domain.ResourceTypePolicy) *Registry {
	r, err := NewRegistry(policies...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the policy for a resource type
func (r *Registry) Lookup(id domain.ResourceTypeID) (domain.ResourceTypePolicy, error) {
	p, ok := r.policies[id]
	if !ok {
		return domain.ResourceTypePolicy{}, fmt.Errorf("%w: %q", domain.ErrUnknownResourceType, id)
	}
	return p, nil
}

// ResourceTypes returns all registered IDs in sorted order
func (r *Registry) ResourceTypes() []domain.ResourceTypeID {
	out := make([]domain.ResourceTypeID, len(r.order))
	copy(out, r.order)
	return out
}

// Policies returns all policies in sorted ID order
func (r *Registry) Policies() []domain.ResourceTypePolicy {
	out := make([]domain.ResourceTypePolicy, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.policies[id])
	}
	return out
}

// Len returns the number of registered resource types
func (r *Registry) Len() int {
	return len(r.order)
}

// Digest identifies the loaded rule set; it changes whenever any policy changes
func (r *Registry) Digest() string {
	return r.digest
}

// DisplayName returns the description for a resource type, or a title-cased ID
// when the rule database gives none.
func (r *Registry) DisplayName(id domain.ResourceTypeID) string {
	if p, ok := r.policies[id]; ok && p.Description != "" {
		return p.Description
	}
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(string(id)), "_", " "))
}
