package plan

import (
	"fmt"
	"sort"
)

// Unlimited is the sentinel cap meaning a key imposes no limit.
const Unlimited = -1

// LimitKey names one quota setting in a plan's limits document.
type LimitKey string

const (
	LimitMaxEstablishments LimitKey = "max_establishments"
	LimitMaxEmissionPoints LimitKey = "max_emission_points"
	LimitMaxWarehouses     LimitKey = "max_warehouses"
	LimitMaxSellers        LimitKey = "max_sellers"
	LimitMaxTotalUsers     LimitKey = "max_total_users"
)

// IsValid checks if the limit key belongs to the known vocabulary
func (k LimitKey) IsValid() bool {
	switch k {
	case LimitMaxEstablishments, LimitMaxEmissionPoints, LimitMaxWarehouses,
		LimitMaxSellers, LimitMaxTotalUsers:
		return true
	default:
		return false
	}
}

// String returns the string representation of the limit key
func (k LimitKey) String() string {
	return string(k)
}

// KnownLimitKeys returns the full key vocabulary in stable order.
func KnownLimitKeys() []LimitKey {
	keys := []LimitKey{
		LimitMaxEstablishments,
		LimitMaxEmissionPoints,
		LimitMaxWarehouses,
		LimitMaxSellers,
		LimitMaxTotalUsers,
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// fallbackRule resolves a key that is absent from a limits document.
type fallbackRule struct {
	// fallbackKey is consulted when the primary key is absent; empty means none.
	fallbackKey LimitKey
	// defaultCap applies when the fallback key is absent too.
	defaultCap int
}

// fallbackRules is the single registry of key-specific fallback behavior.
// Every consumer resolves limits through LimitsDocument.Resolve so these
// COALESCE-style rules live in exactly one place.
var fallbackRules = map[LimitKey]fallbackRule{
	// Plans created before the total-users backfill only carry max_sellers.
	LimitMaxTotalUsers: {fallbackKey: LimitMaxSellers, defaultCap: Unlimited},
}

// LimitsDocument is the quota map attached to a plan. Keys evolve append-only
// via migrations; absent keys resolve through the fallback registry and
// unknown keys resolve to Unlimited so a schema-evolution gap never blocks
// every company at once.
type LimitsDocument struct {
	values map[LimitKey]int
}

// NewLimitsDocument creates a limits document from explicit key values.
func NewLimitsDocument(values map[LimitKey]int) *LimitsDocument {
	doc := &LimitsDocument{values: make(map[LimitKey]int, len(values))}
	for k, v := range values {
		doc.values[k] = v
	}
	return doc
}

// NewLimitsDocumentFromRaw creates a limits document from a raw string map,
// as stored in the plan's JSON column.
func NewLimitsDocumentFromRaw(raw map[string]int) *LimitsDocument {
	doc := &LimitsDocument{values: make(map[LimitKey]int, len(raw))}
	for k, v := range raw {
		doc.values[LimitKey(k)] = v
	}
	return doc
}

// Get returns the literal stored value for a key.
func (d *LimitsDocument) Get(key LimitKey) (int, bool) {
	if d == nil || d.values == nil {
		return 0, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether the key is explicitly present.
func (d *LimitsDocument) Has(key LimitKey) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores a value for a key.
func (d *LimitsDocument) Set(key LimitKey, value int) {
	if d.values == nil {
		d.values = make(map[LimitKey]int)
	}
	d.values[key] = value
}

// Remove deletes a key. Only migration rollbacks should do this; forward
// evolution is append-only.
func (d *LimitsDocument) Remove(key LimitKey) {
	if d.values != nil {
		delete(d.values, key)
	}
}

// Resolve returns the effective cap for a key. Present keys resolve to their
// literal stored value. Absent keys go through the fallback registry; keys
// with no rule resolve to Unlimited (fail open, never fail closed).
func (d *LimitsDocument) Resolve(key LimitKey) int {
	if v, ok := d.Get(key); ok {
		return v
	}
	rule, ok := fallbackRules[key]
	if !ok {
		return Unlimited
	}
	if rule.fallbackKey != "" {
		if v, ok := d.Get(rule.fallbackKey); ok {
			return v
		}
	}
	return rule.defaultCap
}

// Validate checks every stored value is a non-negative cap or the Unlimited
// sentinel. Values outside that domain are invalid plan data.
func (d *LimitsDocument) Validate() error {
	if d == nil {
		return nil
	}
	for k, v := range d.values {
		if v < Unlimited {
			return fmt.Errorf("%w: %s = %d", ErrInvalidLimitValue, k, v)
		}
	}
	return nil
}

// Values returns a copy of the raw key values for persistence.
func (d *LimitsDocument) Values() map[string]int {
	if d == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(d.values))
	for k, v := range d.values {
		out[string(k)] = v
	}
	return out
}

// Len returns the number of explicitly stored keys.
func (d *LimitsDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Equal reports whether two documents store exactly the same keys and values.
func (d *LimitsDocument) Equal(other *LimitsDocument) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d == nil || other == nil {
		return true
	}
	for k, v := range d.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (d *LimitsDocument) Clone() *LimitsDocument {
	if d == nil {
		return NewLimitsDocument(nil)
	}
	return NewLimitsDocument(d.values)
}
