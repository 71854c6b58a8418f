package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOrderAndDelete(t *testing.T) {
	t.Parallel()

	r := NewRecord(3)
	r.Set("b", 1)
	r.Set("a", "x")
	r.Set("c", nil)
	r.Set("b", 2) // overwrite keeps position

	assert.Equal(t, []string{"b", "a", "c"}, r.Keys())
	assert.Equal(t, 2, r.Value("b"))

	r.Delete("a")
	assert.Equal(t, []string{"b", "c"}, r.Keys())
	_, ok := r.Get("a")
	assert.False(t, ok)

	r.Delete("missing")
	assert.Equal(t, 2, r.Len())
}

func TestRecordCloneIsIndependent(t *testing.T) {
	t.Parallel()

	r := NewRecord(2)
	r.Set("name", "Suite 100")
	r.Set("sqft", 500)

	c := r.Clone()
	c.Set("name", "")
	c.Delete("sqft")

	assert.Equal(t, "Suite 100", r.Value("name"))
	assert.Equal(t, []string{"name", "sqft"}, r.Keys())
	assert.False(t, r.Equal(c))
	assert.True(t, r.Equal(r.Clone()))
}

func TestRecordEqualDecimals(t *testing.T) {
	t.Parallel()

	a, b := NewRecord(1), NewRecord(1)
	a.Set("amt", decimal.RequireFromString("10.50"))
	b.Set("amt", decimal.RequireFromString("10.50"))
	assert.True(t, a.Equal(b))

	b.Set("amt", decimal.RequireFromString("10.51"))
	assert.False(t, a.Equal(b))
}

func TestRecordMarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	r := NewRecord(4)
	r.Set("z", "é & <b>")
	r.Set("a", decimal.RequireFromString("1234.50"))
	r.Set("m", nil)
	r.Set("flag", true)

	b, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":"é & <b>","a":1234.50,"m":null,"flag":true}`, string(b))

	// encoding/json escapes HTML in marshaler output unless told not to.
	escaped, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(escaped), `\u0026`)
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNumeric(3))
	assert.True(t, IsNumeric(2.5))
	assert.True(t, IsNumeric(decimal.NewFromInt(1)))
	assert.False(t, IsNumeric(true))
	assert.False(t, IsNumeric("12"))
	assert.False(t, IsNumeric(nil))
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want PropertyCategory
	}{
		{"multifamily", CategoryMultifamily},
		{"residential", CategoryMultifamily},
		{" Office ", CategoryOffice},
		{"retail", CategoryRetail},
		{"industrial", CategoryIndustrial},
		{"mixed_use", CategoryMixedUse},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("hotel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCategory))

	cats, err := ParseCategories([]string{"office", "retail"})
	require.NoError(t, err)
	assert.Equal(t, []PropertyCategory{CategoryOffice, CategoryRetail}, cats)
	_, err = ParseCategories([]string{"office", "land"})
	assert.Error(t, err)
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Multifamily", CategoryMultifamily.Title())
	assert.Equal(t, "Mixed Use", CategoryMixedUse.Title())
}

func TestRentRollUnitFields(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	bath := decimal.RequireFromString("1.5")
	u := RentRollUnit{
		UnitID:          "UNIT_1234",
		UnitNumber:      "4B",
		Floor:           2,
		Bathrooms:       &bath,
		SquareFootage:   900,
		RentAmount:      decimal.RequireFromString("2100.00"),
		LeaseStartDate:  start,
		LeaseEndDate:    start.AddDate(1, 0, 0),
		LeaseStatus:     LeaseVacant,
		SecurityDeposit: decimal.RequireFromString("1500.25"),
		Amenities:       []string{"Pool", "Balcony"},
	}

	r := ToFields(u)
	assert.Equal(t, "UNIT_1234", r.Value("unit_id"))
	assert.Nil(t, r.Value("bedrooms"))
	assert.Nil(t, r.Value("tenant_name"))
	assert.Equal(t, "2024-02-01", r.Value("lease_start_date"))
	assert.Equal(t, "2025-02-01", r.Value("lease_end_date"))
	assert.Equal(t, "vacant", r.Value("lease_status"))
	assert.Equal(t, "Pool, Balcony", r.Value("amenities"))
	assert.Equal(t, 16, r.Len())
}

func TestTenantInfoFieldsPaymentHistoryJSON(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tn := TenantInfo{
		TenantID:       "TENANT_12345",
		LeaseStartDate: d,
		LeaseEndDate:   d.AddDate(1, 0, 0),
		MoveInDate:     d,
		TenantType:     TenantOffice,
		PaymentHistory: []Payment{
			{Date: d, Amount: decimal.RequireFromString("1000.00"), Status: PaymentOnTime},
			{Date: d.AddDate(0, 0, 30), Amount: decimal.RequireFromString("612.40"), Status: PaymentPartial},
		},
	}

	r := tn.Fields()
	assert.Equal(t,
		`[{"date":"2024-01-01","amount":1000.00,"status":"on_time"},{"date":"2024-01-31","amount":612.40,"status":"partial"}]`,
		r.Value("payment_history"))
	assert.Equal(t, "office", r.Value("tenant_type"))
	assert.Nil(t, r.Value("move_out_date"))

	tn.PaymentHistory = nil
	assert.Nil(t, tn.Fields().Value("payment_history"))
}

func TestMarketAnalysisFieldsNestedJSON(t *testing.T) {
	t.Parallel()

	m := MarketAnalysisData{
		PropertyType: CategoryRetail,
		EconomicIndicators: EconomicIndicators{
			UnemploymentRate: 4.2, GDPGrowth: 2.5, PopulationGrowth: 1.1,
			MedianHouseholdIncome: 64000, JobGrowthRate: 2,
		},
		Demographics: Demographics{MedianAge: 34, CollegeEducatedPercent: 41.5, HouseholdSizeAvg: 2.6, HomeownershipRate: 60},
		MarketTrends: []string{"Growing demand", "New development"},
	}
	r := m.Fields()
	assert.Equal(t,
		`{"unemployment_rate":4.2,"gdp_growth":2.5,"population_growth":1.1,"median_household_income":64000,"job_growth_rate":2}`,
		r.Value("economic_indicators"))
	assert.Equal(t,
		`{"median_age":34,"college_educated_percent":41.5,"household_size_avg":2.6,"homeownership_rate":60}`,
		r.Value("demographics"))
	assert.Equal(t, "Growing demand, New development", r.Value("market_trends"))
	assert.Nil(t, r.Value("competition_analysis"))
	assert.Nil(t, r.Value("avg_price_per_unit"))
}

func TestFieldsMatchDictionaries(t *testing.T) {
	t.Parallel()

	kinds := map[Kind]Record{
		KindRentRoll:          RentRollUnit{}.Fields(),
		KindComparables:       ComparableProperty{}.Fields(),
		KindOperatingExpenses: OperatingExpense{}.Fields(),
		KindTenantRoster:      TenantInfo{}.Fields(),
		KindNOI:               NOIDataPoint{}.Fields(),
		KindMarketAnalysis:    MarketAnalysisData{}.Fields(),
	}
	for k, r := range kinds {
		var names []string
		for _, d := range Dictionary(k) {
			names = append(names, d.Name)
		}
		assert.Equal(t, names, r.Keys(), k)
		assert.Len(t, DictionaryMap(k), len(names))
	}
	assert.Nil(t, Dictionary("unknown"))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind("noi_data")
	require.NoError(t, err)
	assert.Equal(t, KindNOI, k)
	_, err = ParseKind("noi")
	assert.Error(t, err)
}

func TestKindTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Rent Roll", KindRentRoll.Title())
	assert.Equal(t, "Operating Expenses", KindOperatingExpenses.Title())
}

func TestFormatDecimalKeepsScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1500.00", FormatDecimal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, "1.5", FormatDecimal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "42", FormatDecimal(decimal.NewFromInt(42)))
}
