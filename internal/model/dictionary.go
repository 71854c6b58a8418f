package model

import (
	"github.com/rotisserie/eris"
)

// Kind identifies one of the six dataset kinds.
type Kind string

// Dataset kinds. The values double as file-name stems.
const (
	KindRentRoll          Kind = "rent_roll"
	KindComparables       Kind = "comparables"
	KindOperatingExpenses Kind = "operating_expenses"
	KindTenantRoster      Kind = "tenant_roster"
	KindNOI               Kind = "noi_data"
	KindMarketAnalysis    Kind = "market_analysis"
)

// AllKinds returns the dataset kinds in generation order.
func AllKinds() []Kind {
	return []Kind{
		KindRentRoll,
		KindComparables,
		KindOperatingExpenses,
		KindTenantRoster,
		KindNOI,
		KindMarketAnalysis,
	}
}

// Title renders the kind for display, e.g. "Noi Data".
func (k Kind) Title() string { return titleCase(string(k)) }

func (k Kind) String() string { return string(k) }

// ParseKind validates a dataset kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", eris.Errorf("model: unknown dataset kind %q", s)
}

// FieldDoc documents one field of a dataset kind.
type FieldDoc struct {
	Name        string `json:"field_name" yaml:"field_name"`
	Description string `json:"description" yaml:"description"`
}

// Dictionary returns the field documentation for a dataset kind, in column
// order. Unknown kinds return nil.
func Dictionary(k Kind) []FieldDoc {
	switch k {
	case KindRentRoll:
		return RentRollFields
	case KindComparables:
		return ComparablesFields
	case KindOperatingExpenses:
		return OperatingExpensesFields
	case KindTenantRoster:
		return TenantRosterFields
	case KindNOI:
		return NOIFields
	case KindMarketAnalysis:
		return MarketAnalysisFields
	}
	return nil
}

// DictionaryMap returns the dictionary for k as a name -> description map.
func DictionaryMap(k Kind) map[string]string {
	docs := Dictionary(k)
	out := make(map[string]string, len(docs))
	for _, d := range docs {
		out[d.Name] = d.Description
	}
	return out
}

// RentRollFields documents RentRollUnit records.
var RentRollFields = []FieldDoc{
	{"unit_id", "Unique identifier for the unit"},
	{"unit_number", "Unit number or identifier"},
	{"floor", "Floor number where the unit is located"},
	{"bedrooms", "Number of bedrooms in the unit"},
	{"bathrooms", "Number of bathrooms (can be fractional)"},
	{"square_footage", "Total square footage of the unit"},
	{"rent_amount", "Monthly rent amount"},
	{"lease_start_date", "Start date of the current lease"},
	{"lease_end_date", "End date of the current lease"},
	{"lease_status", "Current status of the lease (occupied, vacant, pending, not_available)"},
	{"tenant_name", "Name of the current tenant"},
	{"security_deposit", "Security deposit amount"},
	{"pet_deposit", "Pet deposit amount if applicable"},
	{"parking_spaces", "Number of parking spaces assigned to the unit"},
	{"amenities", "List of amenities included with the unit"},
	{"notes", "Additional notes about the unit"},
}

// ComparablesFields documents ComparableProperty records.
var ComparablesFields = []FieldDoc{
	{"property_id", "Unique identifier for the comparable property"},
	{"property_name", "Name of the property"},
	{"address", "Street address"},
	{"city", "City"},
	{"state", "State"},
	{"zip_code", "ZIP code"},
	{"property_type", "Type of property (multifamily, office, retail, industrial, mixed_use)"},
	{"year_built", "Year the property was built"},
	{"total_units", "Total number of units"},
	{"total_sqft", "Total square footage"},
	{"sale_price", "Sale price of the property"},
	{"sale_date", "Date of sale"},
	{"price_per_sqft", "Sale price per square foot"},
	{"price_per_unit", "Sale price per unit"},
	{"cap_rate", "Capitalization rate"},
	{"noi", "Net Operating Income"},
	{"occupancy_rate", "Occupancy rate percentage"},
	{"avg_rent_per_sqft", "Average rent per square foot"},
	{"amenities", "List of property amenities"},
	{"notes", "Additional notes"},
}

// OperatingExpensesFields documents OperatingExpense records.
var OperatingExpensesFields = []FieldDoc{
	{"expense_id", "Unique identifier for the expense"},
	{"category", "Expense category (e.g., Maintenance, Utilities, Insurance)"},
	{"subcategory", "Subcategory within the main category"},
	{"description", "Detailed description of the expense"},
	{"amount", "Expense amount"},
	{"period_start", "Start date of the expense period"},
	{"period_end", "End date of the expense period"},
	{"vendor", "Vendor or service provider"},
	{"invoice_number", "Invoice or reference number"},
	{"payment_date", "Date when payment was made"},
	{"payment_method", "Method of payment"},
	{"recurring", "Whether this is a recurring expense"},
	{"notes", "Additional notes"},
}

// TenantRosterFields documents TenantInfo records.
var TenantRosterFields = []FieldDoc{
	{"tenant_id", "Unique identifier for the tenant"},
	{"tenant_name", "Name of the tenant"},
	{"unit_id", "Unit identifier"},
	{"lease_start_date", "Start date of the lease"},
	{"lease_end_date", "End date of the lease"},
	{"monthly_rent", "Monthly rent amount"},
	{"security_deposit", "Security deposit amount"},
	{"pet_deposit", "Pet deposit amount if applicable"},
	{"tenant_type", "Type of tenant (residential, commercial, retail, office)"},
	{"age_range", "Age range of the tenant"},
	{"household_size", "Number of people in the household"},
	{"income_range", "Income range of the tenant"},
	{"employment_status", "Employment status"},
	{"credit_score_range", "Credit score range"},
	{"move_in_date", "Actual move-in date"},
	{"move_out_date", "Move-out date if applicable"},
	{"lease_renewals", "Number of lease renewals"},
	{"payment_history", "Payment history data"},
	{"emergency_contact", "Emergency contact information"},
	{"notes", "Additional notes"},
}

// NOIFields documents NOIDataPoint records.
var NOIFields = []FieldDoc{
	{"period_start", "Start date of the period"},
	{"period_end", "End date of the period"},
	{"gross_rental_income", "Total gross rental income"},
	{"other_income", "Other income sources"},
	{"total_income", "Total income"},
	{"operating_expenses", "Total operating expenses"},
	{"net_operating_income", "Net Operating Income"},
	{"occupancy_rate", "Occupancy rate percentage"},
	{"avg_rent_per_sqft", "Average rent per square foot"},
	{"notes", "Additional notes"},
}

// MarketAnalysisFields documents MarketAnalysisData records.
var MarketAnalysisFields = []FieldDoc{
	{"market_id", "Unique identifier for the market analysis"},
	{"market_name", "Name of the market"},
	{"geographic_area", "Geographic area covered"},
	{"analysis_date", "Date of the analysis"},
	{"property_type", "Type of property analyzed"},
	{"avg_sale_price", "Average sale price in the market"},
	{"avg_price_per_sqft", "Average price per square foot"},
	{"avg_price_per_unit", "Average price per unit"},
	{"avg_cap_rate", "Average capitalization rate"},
	{"avg_occupancy_rate", "Average occupancy rate"},
	{"avg_rent_per_sqft", "Average rent per square foot"},
	{"market_trends", "List of market trends"},
	{"economic_indicators", "Economic indicators data"},
	{"demographics", "Demographic data"},
	{"competition_analysis", "Competition analysis"},
	{"notes", "Additional notes"},
}
