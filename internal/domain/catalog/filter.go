// internal/domain/catalog/filter.go
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/your-org/collectibles-storefront/internal/pkg/textnorm"
)

// FilterCategory groups filters that are ORed together
type FilterCategory string

const (
	FilterType       FilterCategory = "type"
	FilterCollection FilterCategory = "collection"
	FilterPrice      FilterCategory = "price"
)

// ErrInvalidFilter is returned for unknown categories and malformed price bands
var ErrInvalidFilter = errors.New("invalid filter")

// PriceBand is a half-open range [Min, Max) in whole currency units. Max 0 means unbounded.
type PriceBand struct {
	Min int64
	Max int64
}

// ParsePriceBand reads "20-50" or "50+"
func ParsePriceBand(key string) (PriceBand, error) {
	key = strings.TrimSpace(key)
	if strings.HasSuffix(key, "+") {
		min, err := strconv.ParseInt(strings.TrimSuffix(key, "+"), 10, 64)
		if err != nil || min < 0 {
			return PriceBand{}, errors.Wrapf(ErrInvalidFilter, "price band %q", key)
		}
		return PriceBand{Min: min}, nil
	}

	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return PriceBand{}, errors.Wrapf(ErrInvalidFilter, "price band %q", key)
	}
	min, err1 := strconv.ParseInt(parts[0], 10, 64)
	max, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil || min < 0 || max <= min {
		return PriceBand{}, errors.Wrapf(ErrInvalidFilter, "price band %q", key)
	}
	return PriceBand{Min: min, Max: max}, nil
}

// Contains reports whether a price in cents falls inside the band
func (b PriceBand) Contains(cents int64) bool {
	if cents < b.Min*100 {
		return false
	}
	return b.Max == 0 || cents < b.Max*100
}

// Key is the canonical filter key of the band
func (b PriceBand) Key() string {
	if b.Max == 0 {
		return fmt.Sprintf("%d+", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// FilterSet holds the active filters. The zero value matches everything.
type FilterSet struct {
	types       map[string]bool
	collections map[string]bool
	prices      map[string]PriceBand
}

// NewFilterSetFromQuery builds a filter set from repeated query values
func NewFilterSetFromQuery(values map[string][]string) (*FilterSet, error) {
	fs := &FilterSet{}
	for _, cat := range []FilterCategory{FilterType, FilterCollection, FilterPrice} {
		for _, raw := range values[string(cat)] {
			for _, label := range strings.Split(raw, ",") {
				if strings.TrimSpace(label) == "" {
					continue
				}
				if err := fs.Set(cat, label, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return fs, nil
}

// Toggle flips a filter and reports whether it is active afterwards
func (f *FilterSet) Toggle(category FilterCategory, label string) (bool, error) {
	active := !f.IsActive(category, label)
	if err := f.Set(category, label, active); err != nil {
		return false, err
	}
	return active, nil
}

// Set activates or clears one filter. Labels are normalized here, the same way product fields are.
func (f *FilterSet) Set(category FilterCategory, label string, active bool) error {
	key := textnorm.FilterKey(label)
	if key == "" {
		return errors.Wrap(ErrInvalidFilter, "empty filter label")
	}

	switch category {
	case FilterType:
		f.types = setKey(f.types, key, active)
	case FilterCollection:
		f.collections = setKey(f.collections, key, active)
	case FilterPrice:
		band, err := ParsePriceBand(key)
		if err != nil {
			return err
		}
		if f.prices == nil {
			f.prices = make(map[string]PriceBand)
		}
		if active {
			f.prices[band.Key()] = band
		} else {
			delete(f.prices, band.Key())
		}
	default:
		return errors.Wrapf(ErrInvalidFilter, "unknown category %q", category)
	}
	return nil
}

// IsActive reports whether a filter is currently applied
func (f *FilterSet) IsActive(category FilterCategory, label string) bool {
	key := textnorm.FilterKey(label)
	switch category {
	case FilterType:
		return f.types[key]
	case FilterCollection:
		return f.collections[key]
	case FilterPrice:
		band, err := ParsePriceBand(key)
		if err != nil {
			return false
		}
		_, ok := f.prices[band.Key()]
		return ok
	}
	return false
}

// Empty reports whether no filter is active
func (f *FilterSet) Empty() bool {
	return len(f.types) == 0 && len(f.collections) == 0 && len(f.prices) == 0
}

// Keys lists the active keys of a category in sorted order
func (f *FilterSet) Keys(category FilterCategory) []string {
	var keys []string
	switch category {
	case FilterType:
		for k := range f.types {
			keys = append(keys, k)
		}
	case FilterCollection:
		for k := range f.collections {
			keys = append(keys, k)
		}
	case FilterPrice:
		for k := range f.prices {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Matches applies AND across categories and OR within one
func (f *FilterSet) Matches(p *Product) bool {
	if len(f.types) > 0 && !f.types[textnorm.FilterKey(p.Type)] {
		return false
	}
	if len(f.collections) > 0 && !f.collections[textnorm.FilterKey(p.Collection)] {
		return false
	}
	if len(f.prices) > 0 {
		price := p.EffectivePrice()
		inBand := false
		for _, band := range f.prices {
			if band.Contains(price) {
				inBand = true
				break
			}
		}
		if !inBand {
			return false
		}
	}
	return true
}

// Apply returns the matching products in their original order
func (f *FilterSet) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

func setKey(m map[string]bool, key string, active bool) map[string]bool {
	if m == nil {
		m = make(map[string]bool)
	}
	if active {
		m[key] = true
	} else {
		delete(m, key)
	}
	return m
}
