package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RentRollUnit is one unit in a property's rent roll.
type RentRollUnit struct {
	UnitID          string           `json:"unit_id"`
	UnitNumber      string           `json:"unit_number"`
	Floor           int              `json:"floor"`
	Bedrooms        *int             `json:"bedrooms"`
	Bathrooms       *decimal.Decimal `json:"bathrooms"`
	SquareFootage   int              `json:"square_footage"`
	RentAmount      decimal.Decimal  `json:"rent_amount"`
	LeaseStartDate  time.Time        `json:"lease_start_date"`
	LeaseEndDate    time.Time        `json:"lease_end_date"`
	LeaseStatus     LeaseStatus      `json:"lease_status"`
	TenantName      *string          `json:"tenant_name"`
	SecurityDeposit decimal.Decimal  `json:"security_deposit"`
	PetDeposit      *decimal.Decimal `json:"pet_deposit"`
	ParkingSpaces   *int             `json:"parking_spaces"`
	Amenities       []string         `json:"amenities"`
	Notes           *string          `json:"notes"`
}

// ComparableProperty is a sold property used for valuation benchmarking.
type ComparableProperty struct {
	PropertyID     string           `json:"property_id"`
	PropertyName   string           `json:"property_name"`
	Address        string           `json:"address"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	ZipCode        string           `json:"zip_code"`
	PropertyType   PropertyCategory `json:"property_type"`
	YearBuilt      int              `json:"year_built"`
	TotalUnits     int              `json:"total_units"`
	TotalSqft      int              `json:"total_sqft"`
	SalePrice      decimal.Decimal  `json:"sale_price"`
	SaleDate       time.Time        `json:"sale_date"`
	PricePerSqft   *decimal.Decimal `json:"price_per_sqft"`
	PricePerUnit   *decimal.Decimal `json:"price_per_unit"`
	CapRate        decimal.Decimal  `json:"cap_rate"`
	NOI            decimal.Decimal  `json:"noi"`
	OccupancyRate  decimal.Decimal  `json:"occupancy_rate"`
	AvgRentPerSqft decimal.Decimal  `json:"avg_rent_per_sqft"`
	Amenities      []string         `json:"amenities"`
	Notes          *string          `json:"notes"`
}

// OperatingExpense is one expense line item.
type OperatingExpense struct {
	ExpenseID     string          `json:"expense_id"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	Vendor        string          `json:"vendor"`
	InvoiceNumber string          `json:"invoice_number"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Recurring     bool            `json:"recurring"`
	Notes         *string         `json:"notes"`
}

// Payment is one entry in a tenant's payment history.
type Payment struct {
	Date   time.Time
	Amount decimal.Decimal
	Status PaymentStatus
}

// MarshalJSON renders the date as YYYY-MM-DD and the amount as a number.
func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string          `json:"date"`
		Amount json.RawMessage `json:"amount"`
		Status PaymentStatus   `json:"status"`
	}{
		Date:   p.Date.Format(DateLayout),
		Amount: json.RawMessage(FormatDecimal(p.Amount)),
		Status: p.Status,
	})
}

// TenantInfo is a tenant roster entry. UnitID refers to a rent-roll unit by
// value only.
type TenantInfo struct {
	TenantID         string           `json:"tenant_id"`
	TenantName       string           `json:"tenant_name"`
	UnitID           string           `json:"unit_id"`
	LeaseStartDate   time.Time        `json:"lease_start_date"`
	LeaseEndDate     time.Time        `json:"lease_end_date"`
	MonthlyRent      decimal.Decimal  `json:"monthly_rent"`
	SecurityDeposit  decimal.Decimal  `json:"security_deposit"`
	PetDeposit       *decimal.Decimal `json:"pet_deposit"`
	TenantType       TenantCategory   `json:"tenant_type"`
	AgeRange         string           `json:"age_range"`
	HouseholdSize    int              `json:"household_size"`
	IncomeRange      string           `json:"income_range"`
	EmploymentStatus string           `json:"employment_status"`
	CreditScoreRange string           `json:"credit_score_range"`
	MoveInDate       time.Time        `json:"move_in_date"`
	MoveOutDate      *time.Time       `json:"move_out_date"`
	LeaseRenewals    int              `json:"lease_renewals"`
	PaymentHistory   []Payment        `json:"payment_history"`
	EmergencyContact string           `json:"emergency_contact"`
	Notes            *string          `json:"notes"`
}

// NOIDataPoint is one ~30-day period of a property's income statement.
type NOIDataPoint struct {
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	GrossRentalIncome  decimal.Decimal `json:"gross_rental_income"`
	OtherIncome        decimal.Decimal `json:"other_income"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	OperatingExpenses  decimal.Decimal `json:"operating_expenses"`
	NetOperatingIncome decimal.Decimal `json:"net_operating_income"`
	OccupancyRate      decimal.Decimal `json:"occupancy_rate"`
	AvgRentPerSqft     decimal.Decimal `json:"avg_rent_per_sqft"`
	Notes              *string         `json:"notes"`
}

// EconomicIndicators summarises a market's economy.
type EconomicIndicators struct {
	UnemploymentRate      float64 `json:"unemployment_rate"`
	GDPGrowth             float64 `json:"gdp_growth"`
	PopulationGrowth      float64 `json:"population_growth"`
	MedianHouseholdIncome int     `json:"median_household_income"`
	JobGrowthRate         float64 `json:"job_growth_rate"`
}

// Demographics summarises a market's population.
type Demographics struct {
	MedianAge              int     `json:"median_age"`
	CollegeEducatedPercent float64 `json:"college_educated_percent"`
	HouseholdSizeAvg       float64 `json:"household_size_avg"`
	HomeownershipRate      float64 `json:"homeownership_rate"`
}

// MarketAnalysisData is one market's averaged metrics and commentary.
type MarketAnalysisData struct {
	MarketID            string             `json:"market_id"`
	MarketName          string             `json:"market_name"`
	GeographicArea      string             `json:"geographic_area"`
	AnalysisDate        time.Time          `json:"analysis_date"`
	PropertyType        PropertyCategory   `json:"property_type"`
	AvgSalePrice        decimal.Decimal    `json:"avg_sale_price"`
	AvgPricePerSqft     decimal.Decimal    `json:"avg_price_per_sqft"`
	AvgPricePerUnit     *decimal.Decimal   `json:"avg_price_per_unit"`
	AvgCapRate          decimal.Decimal    `json:"avg_cap_rate"`
	AvgOccupancyRate    decimal.Decimal    `json:"avg_occupancy_rate"`
	AvgRentPerSqft      decimal.Decimal    `json:"avg_rent_per_sqft"`
	MarketTrends        []string           `json:"market_trends"`
	EconomicIndicators  EconomicIndicators `json:"economic_indicators"`
	Demographics        Demographics       `json:"demographics"`
	CompetitionAnalysis []string           `json:"competition_analysis"`
	Notes               *string            `json:"notes"`
}

// Flattener is implemented by every entity kind.
type Flattener interface {
	Fields() Record
}

// ToFields flattens an entity into a record suitable for flat serialization.
func ToFields(e Flattener) Record {
	return e.Fields()
}

// Flatten converts a batch of entities into records.
func Flatten[T Flattener](items []T) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it.Fields()
	}
	return out
}

// Fields implements Flattener.
func (u RentRollUnit) Fields() Record {
	r := NewRecord(len(RentRollFields))
	r.Set("unit_id", u.UnitID)
	r.Set("unit_number", u.UnitNumber)
	r.Set("floor", u.Floor)
	r.Set("bedrooms", optInt(u.Bedrooms))
	r.Set("bathrooms", optDecimal(u.Bathrooms))
	r.Set("square_footage", u.SquareFootage)
	r.Set("rent_amount", u.RentAmount)
	r.Set("lease_start_date", u.LeaseStartDate.Format(DateLayout))
	r.Set("lease_end_date", u.LeaseEndDate.Format(DateLayout))
	r.Set("lease_status", string(u.LeaseStatus))
	r.Set("tenant_name", optString(u.TenantName))
	r.Set("security_deposit", u.SecurityDeposit)
	r.Set("pet_deposit", optDecimal(u.PetDeposit))
	r.Set("parking_spaces", optInt(u.ParkingSpaces))
	r.Set("amenities", joinList(u.Amenities))
	r.Set("notes", optString(u.Notes))
	return r
}

// Fields implements Flattener.
func (c ComparableProperty) Fields() Record {
	r := NewRecord(len(ComparablesFields))
	r.Set("property_id", c.PropertyID)
	r.Set("property_name", c.PropertyName)
	r.Set("address", c.Address)
	r.Set("city", c.City)
	r.Set("state", c.State)
	r.Set("zip_code", c.ZipCode)
	r.Set("property_type", string(c.PropertyType))
	r.Set("year_built", c.YearBuilt)
	r.Set("total_units", c.TotalUnits)
	r.Set("total_sqft", c.TotalSqft)
	r.Set("sale_price", c.SalePrice)
	r.Set("sale_date", c.SaleDate.Format(DateLayout))
	r.Set("price_per_sqft", optDecimal(c.PricePerSqft))
	r.Set("price_per_unit", optDecimal(c.PricePerUnit))
	r.Set("cap_rate", c.CapRate)
	r.Set("noi", c.NOI)
	r.Set("occupancy_rate", c.OccupancyRate)
	r.Set("avg_rent_per_sqft", c.AvgRentPerSqft)
	r.Set("amenities", joinList(c.Amenities))
	r.Set("notes", optString(c.Notes))
	return r
}

// Fields implements Flattener.
func (e OperatingExpense) Fields() Record {
	r := NewRecord(len(OperatingExpensesFields))
	r.Set("expense_id", e.ExpenseID)
	r.Set("category", e.Category)
	r.Set("subcategory", emptyToNil(e.Subcategory))
	r.Set("description", e.Description)
	r.Set("amount", e.Amount)
	r.Set("period_start", e.PeriodStart.Format(DateLayout))
	r.Set("period_end", e.PeriodEnd.Format(DateLayout))
	r.Set("vendor", e.Vendor)
	r.Set("invoice_number", e.InvoiceNumber)
	r.Set("payment_date", e.PaymentDate.Format(DateLayout))
	r.Set("payment_method", e.PaymentMethod)
	r.Set("recurring", e.Recurring)
	r.Set("notes", optString(e.Notes))
	return r
}

// Fields implements Flattener.
func (t TenantInfo) Fields() Record {
	r := NewRecord(len(TenantRosterFields))
	r.Set("tenant_id", t.TenantID)
	r.Set("tenant_name", t.TenantName)
	r.Set("unit_id", t.UnitID)
	r.Set("lease_start_date", t.LeaseStartDate.Format(DateLayout))
	r.Set("lease_end_date", t.LeaseEndDate.Format(DateLayout))
	r.Set("monthly_rent", t.MonthlyRent)
	r.Set("security_deposit", t.SecurityDeposit)
	r.Set("pet_deposit", optDecimal(t.PetDeposit))
	r.Set("tenant_type", string(t.TenantType))
	r.Set("age_range", t.AgeRange)
	r.Set("household_size", t.HouseholdSize)
	r.Set("income_range", t.IncomeRange)
	r.Set("employment_status", t.EmploymentStatus)
	r.Set("credit_score_range", t.CreditScoreRange)
	r.Set("move_in_date", t.MoveInDate.Format(DateLayout))
	r.Set("move_out_date", optDate(t.MoveOutDate))
	r.Set("lease_renewals", t.LeaseRenewals)
	r.Set("payment_history", compactJSON(t.PaymentHistory, len(t.PaymentHistory) > 0))
	r.Set("emergency_contact", t.EmergencyContact)
	r.Set("notes", optString(t.Notes))
	return r
}

// Fields implements Flattener.
func (p NOIDataPoint) Fields() Record {
	r := NewRecord(len(NOIFields))
	r.Set("period_start", p.PeriodStart.Format(DateLayout))
	r.Set("period_end", p.PeriodEnd.Format(DateLayout))
	r.Set("gross_rental_income", p.GrossRentalIncome)
	r.Set("other_income", p.OtherIncome)
	r.Set("total_income", p.TotalIncome)
	r.Set("operating_expenses", p.OperatingExpenses)
	r.Set("net_operating_income", p.NetOperatingIncome)
	r.Set("occupancy_rate", p.OccupancyRate)
	r.Set("avg_rent_per_sqft", p.AvgRentPerSqft)
	r.Set("notes", optString(p.Notes))
	return r
}

// Fields implements Flattener.
func (m MarketAnalysisData) Fields() Record {
	r := NewRecord(len(MarketAnalysisFields))
	r.Set("market_id", m.MarketID)
	r.Set("market_name", m.MarketName)
	r.Set("geographic_area", m.GeographicArea)
	r.Set("analysis_date", m.AnalysisDate.Format(DateLayout))
	r.Set("property_type", string(m.PropertyType))
	r.Set("avg_sale_price", m.AvgSalePrice)
	r.Set("avg_price_per_sqft", m.AvgPricePerSqft)
	r.Set("avg_price_per_unit", optDecimal(m.AvgPricePerUnit))
	r.Set("avg_cap_rate", m.AvgCapRate)
	r.Set("avg_occupancy_rate", m.AvgOccupancyRate)
	r.Set("avg_rent_per_sqft", m.AvgRentPerSqft)
	r.Set("market_trends", joinList(m.MarketTrends))
	r.Set("economic_indicators", compactJSON(m.EconomicIndicators, true))
	r.Set("demographics", compactJSON(m.Demographics, true))
	r.Set("competition_analysis", joinList(m.CompetitionAnalysis))
	r.Set("notes", optString(m.Notes))
	return r
}

func optInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func optString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func optDecimal(v *decimal.Decimal) any {
	if v == nil {
		return nil
	}
	return *v
}

func optDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(DateLayout)
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func joinList(items []string) any {
	if len(items) == 0 {
		return nil
	}
	return strings.Join(items, ", ")
}

// compactJSON renders v as a JSON text blob. Marshal failures cannot occur
// for the entity types passed here, so they render as nil.
func compactJSON(v any, present bool) any {
	if !present {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(b)
}
