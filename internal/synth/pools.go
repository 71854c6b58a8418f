package synth

import "fmt"

// Place is a city with its state.
type Place struct {
	City  string
	State string
}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Emily",
	"James", "Jessica", "William", "Ashley", "Richard", "Amanda", "Joseph",
	"Jennifer", "Thomas", "Michelle", "Christopher", "Kimberly", "Charles",
	"Donna", "Daniel", "Carol", "Matthew", "Sandra", "Anthony", "Ruth",
	"Mark", "Sharon", "Donald", "Nancy", "Steven", "Betty", "Paul", "Helen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

var places = []Place{
	{"New York", "NY"}, {"Los Angeles", "CA"}, {"Chicago", "IL"}, {"Houston", "TX"},
	{"Phoenix", "AZ"}, {"Philadelphia", "PA"}, {"San Antonio", "TX"}, {"San Diego", "CA"},
	{"Dallas", "TX"}, {"San Jose", "CA"}, {"Austin", "TX"}, {"Jacksonville", "FL"},
	{"Fort Worth", "TX"}, {"Columbus", "OH"}, {"Charlotte", "NC"}, {"San Francisco", "CA"},
	{"Indianapolis", "IN"}, {"Seattle", "WA"}, {"Denver", "CO"}, {"Washington", "DC"},
	{"Boston", "MA"}, {"El Paso", "TX"}, {"Nashville", "TN"}, {"Detroit", "MI"},
	{"Oklahoma City", "OK"}, {"Portland", "OR"}, {"Las Vegas", "NV"}, {"Memphis", "TN"},
	{"Louisville", "KY"},
}

var streetNames = []string{
	"Main St", "Oak Ave", "Pine Rd", "Cedar Blvd", "Maple Dr", "Elm St",
	"First Ave", "Second St", "Park Ave", "Broadway", "Washington St",
	"Lincoln Ave", "Jefferson Rd", "Madison St", "Franklin Ave",
}

// Amenities is the pool of unit and property amenities.
var Amenities = []string{
	"Pool", "Fitness Center", "Parking Garage", "Balcony", "In-Unit Laundry",
	"Dishwasher", "Air Conditioning", "Hardwood Floors", "Granite Countertops",
	"Walk-in Closet", "Pet Friendly", "Garden", "Rooftop Deck", "Concierge",
	"Package Receiving", "Bike Storage", "Storage Unit", "Patio", "Fireplace",
	"High-Speed Internet", "Cable Ready", "Security System", "Elevator",
}

// ExpenseCategories lists the operating-expense categories in draw order.
var ExpenseCategories = []string{
	"Maintenance", "Utilities", "Insurance", "Property Management",
	"Legal & Professional", "Marketing", "Administrative", "Repairs",
	"Landscaping", "Security", "Cleaning", "Taxes", "Permits",
	"Equipment", "Supplies", "Contractor Services",
}

// ExpenseSubcategories maps each expense category to its subcategories.
var ExpenseSubcategories = map[string][]string{
	"Maintenance":          {"HVAC", "Plumbing", "Electrical", "General Repairs", "Preventive"},
	"Utilities":            {"Electric", "Gas", "Water", "Sewer", "Trash", "Internet"},
	"Insurance":            {"Property", "Liability", "Workers Comp", "Umbrella"},
	"Property Management":  {"Management Fees", "Leasing Commissions", "Administrative"},
	"Legal & Professional": {"Legal Fees", "Accounting", "Consulting", "Appraisal"},
	"Marketing":            {"Advertising", "Signage", "Online Listings", "Brokerage"},
	"Administrative":       {"Office Supplies", "Software", "Phone", "Postage"},
	"Repairs":              {"Emergency", "Capital", "Tenant", "Common Area"},
	"Landscaping":          {"Lawn Care", "Tree Service", "Snow Removal", "Irrigation"},
	"Security":             {"Alarm System", "Security Guards", "Cameras", "Access Control"},
	"Cleaning":             {"Common Areas", "Unit Turnover", "Window Cleaning", "Carpet"},
	"Taxes":                {"Property Tax", "Income Tax", "Sales Tax", "Other Taxes"},
	"Permits":              {"Building", "Business", "Occupancy", "Renewal"},
	"Equipment":            {"HVAC Units", "Appliances", "Maintenance Tools", "Office Equipment"},
	"Supplies":             {"Cleaning", "Maintenance", "Office", "Safety"},
	"Contractor Services":  {"General Contractor", "Specialty Trades", "Emergency Services"},
}

// Vendors is the pool of expense vendors.
var Vendors = []string{
	"ABC Maintenance Co.", "City Utilities", "Metro Insurance", "Premier Property Management",
	"Legal Associates", "Marketing Solutions", "Office Depot", "Quick Fix Repairs",
	"Green Thumb Landscaping", "Secure Systems Inc.", "Clean Sweep Services",
	"Tax Professionals", "Permit Express", "Equipment Rentals", "Supply Central",
	"Contractor Plus", "Emergency Services", "Quality Work", "Reliable Solutions",
}

// PaymentMethods is the pool of expense payment methods.
var PaymentMethods = []string{"Check", "ACH", "Wire Transfer", "Credit Card", "Cash"}

// Name returns a random "First Last" person name.
func (s *Source) Name() string {
	return Pick(s, firstNames) + " " + Pick(s, lastNames)
}

// StreetAddress returns a random street address such as "1234 Oak Ave".
func (s *Source) StreetAddress() string {
	return fmt.Sprintf("%d %s", s.IntRange(100, 9999), Pick(s, streetNames))
}

// Place returns a random city and its state.
func (s *Source) Place() Place {
	return Pick(s, places)
}

// City returns a random city name.
func (s *Source) City() string {
	return s.Place().City
}

// Zip returns a random five-digit ZIP code.
func (s *Source) Zip() string {
	return fmt.Sprintf("%05d", s.IntRange(10000, 99999))
}
