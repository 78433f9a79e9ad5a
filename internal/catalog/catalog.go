// Package catalog holds the static location and service-category vocabulary
// shared by the public inquiry form and the admin dashboard.
package catalog

import (
	"sort"

	"mokshamaa/internal/domain"
)

// citiesByState lists the supported cities per state.
var citiesByState = map[string][]string{
	"Maharashtra": {
		"Mumbai", "Mumbai Suburban", "Pune", "Nagpur", "Thane", "Nashik",
		"Aurangabad", "Solapur", "Kolhapur", "Sangli",
	},
	"Delhi": {
		"New Delhi", "Central Delhi", "East Delhi", "North Delhi", "South Delhi",
	},
	"Karnataka": {
		"Bengaluru", "Mysuru", "Hubli", "Mangaluru",
	},
	"Tamil Nadu": {
		"Chennai", "Coimbatore", "Madurai",
	},
	"Gujarat": {
		"Ahmedabad", "Surat", "Vadodara", "Rajkot",
	},
	"Rajasthan": {
		"Jaipur", "Jodhpur", "Udaipur",
	},
	"West Bengal": {
		"Kolkata", "Howrah",
	},
	"Uttar Pradesh": {
		"Lucknow", "Kanpur", "Agra", "Varanasi",
	},
}

// sampleAreas lists curated localities for cities that have them; other
// cities fall back to directional zones.
var sampleAreas = map[string][]string{
	"Pune":      {"Kothrud", "Deccan", "Camp", "Hadapsar", "Baner"},
	"Mumbai":    {"Andheri", "Borivali", "Dadar", "Ghatkopar", "Mulund"},
	"Ahmedabad": {"Navrangpura", "Satellite", "Maninagar", "Paldi"},
	"Bengaluru": {"Jayanagar", "Malleshwaram", "Indiranagar", "Basavanagudi"},
}

// SubcategoryGroup describes one subcategory choice within a category.
// Multi groups allow several selections joined into a single value.
type SubcategoryGroup struct {
	Name    string
	Multi   bool
	Options []string
}

var subcategoriesByCategory = map[domain.Category][]SubcategoryGroup{
	domain.CategoryReligious: {
		{Name: "Jain Sect", Options: []string{"Shwetambar", "Digambar", "Sthanakvasi", "Terapanth"}},
		{Name: "Building Type", Options: []string{"Jain Temple", "Jain Upashray", "Jain Sthanak"}},
	},
	domain.CategoryResidential: {
		{Name: "Property Type", Options: []string{"2BHK (540 sqft)", "3BHK (720 sqft)"}},
		{Name: "Facilities", Multi: true, Options: []string{"Furnished", "Electronics", "Utensils", "Ration/Kirana", "Other Amenities"}},
	},
	domain.CategoryCommercial: {
		{Name: "Space Type", Options: []string{"Shop (300 sqft)", "Office (500 sqft)", "Showroom (1000 sqft)"}},
	},
	domain.CategoryEducation: {
		{Name: "Institution Type", Options: []string{"University", "College", "School", "Training Center"}},
		{Name: "Special Services", Multi: true, Options: []string{"Paperless Admission", "Online Classes", "Hostel Facility", "Scholarship Available"}},
	},
	domain.CategoryMedical: {
		{Name: "Treatment Type", Multi: true, Options: []string{"Ayurvedic", "Homeopathic", "Allopathic", "Panchakarma", "Yoga"}},
	},
	domain.CategorySocial: {
		{Name: "Facility Type", Options: []string{"Animal Hospital", "Social Hall", "Community Center", "Event Space"}},
	},
}

// States returns the supported states, sorted.
func States() []string {
	states := make([]string, 0, len(citiesByState))
	for state := range citiesByState {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// CitiesFor returns the cities of a state, or nil for an unknown state.
func CitiesFor(state string) []string {
	return citiesByState[state]
}

// AreasFor returns the selectable areas of a city. Cities without curated
// areas get directional zones derived from the city name.
func AreasFor(city string) []string {
	if city == "" {
		return nil
	}
	if areas, ok := sampleAreas[city]; ok {
		return areas
	}
	return []string{
		city + " Central",
		city + " East",
		city + " West",
		city + " North",
		city + " South",
	}
}

// SubcategoriesFor returns the subcategory groups of a category.
func SubcategoriesFor(c domain.Category) []SubcategoryGroup {
	return subcategoriesByCategory[c]
}
