// Package model defines the synthetic real-estate entities, their flat record
// form, and the per-kind field dictionaries.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnsupportedCategory is returned when a property category is not one of
// the known categories. Generators never fall back to a default category.
var ErrUnsupportedCategory = eris.New("unsupported property category")

// PropertyCategory selects the numeric ranges and label formats a generator
// uses.
type PropertyCategory string

// Property categories.
const (
	CategoryMultifamily PropertyCategory = "multifamily"
	CategoryOffice      PropertyCategory = "office"
	CategoryRetail      PropertyCategory = "retail"
	CategoryIndustrial  PropertyCategory = "industrial"
	CategoryMixedUse    PropertyCategory = "mixed_use"
)

// AllCategories returns every supported category in a stable order.
func AllCategories() []PropertyCategory {
	return []PropertyCategory{
		CategoryMultifamily,
		CategoryOffice,
		CategoryRetail,
		CategoryIndustrial,
		CategoryMixedUse,
	}
}

// DefaultCategories are the categories a full generation run covers unless
// configured otherwise.
func DefaultCategories() []PropertyCategory {
	return []PropertyCategory{CategoryMultifamily, CategoryOffice, CategoryRetail}
}

// Valid reports whether c is a supported category.
func (c PropertyCategory) Valid() bool {
	switch c {
	case CategoryMultifamily, CategoryOffice, CategoryRetail, CategoryIndustrial, CategoryMixedUse:
		return true
	}
	return false
}

// Residential reports whether units in this category carry bedroom counts
// and are priced per unit rather than per square foot.
func (c PropertyCategory) Residential() bool {
	return c == CategoryMultifamily
}

// Title renders the category for display, e.g. "Mixed Use".
func (c PropertyCategory) Title() string {
	return titleCase(string(c))
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func (c PropertyCategory) String() string { return string(c) }

// ParseCategory parses a category name. "residential" is accepted as an
// alias for multifamily.
func ParseCategory(s string) (PropertyCategory, error) {
	v := PropertyCategory(strings.ToLower(strings.TrimSpace(s)))
	if v == "residential" {
		return CategoryMultifamily, nil
	}
	if !v.Valid() {
		return "", eris.Wrapf(ErrUnsupportedCategory, "model: parse category %q", s)
	}
	return v, nil
}

// ParseCategories parses a list of category names, preserving order.
func ParseCategories(names []string) ([]PropertyCategory, error) {
	out := make([]PropertyCategory, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// LeaseStatus is the occupancy state of a rent-roll unit.
type LeaseStatus string

// Lease statuses.
const (
	LeaseOccupied     LeaseStatus = "occupied"
	LeaseVacant       LeaseStatus = "vacant"
	LeasePending      LeaseStatus = "pending"
	LeaseNotAvailable LeaseStatus = "not_available"
)

// TenantCategory classifies a tenant.
type TenantCategory string

// Tenant categories.
const (
	TenantResidential TenantCategory = "residential"
	TenantCommercial  TenantCategory = "commercial"
	TenantRetail      TenantCategory = "retail"
	TenantOffice      TenantCategory = "office"
)

// PaymentStatus is the outcome of one rent payment.
type PaymentStatus string

// Payment statuses.
const (
	PaymentOnTime  PaymentStatus = "on_time"
	PaymentLate    PaymentStatus = "late"
	PaymentPartial PaymentStatus = "partial"
)
