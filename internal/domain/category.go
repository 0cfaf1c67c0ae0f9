package domain

// POI Category constants (fixed taxonomy)
const (
	CategoryGasStation = "gas_station"
	CategoryRestaurant = "restaurant"
	CategoryHotel      = "hotel"
	CategoryCamping    = "camping"
	CategoryHospital   = "hospital"
	CategoryCity       = "city"
	CategoryTown       = "town"
	CategoryVillage    = "village"
	CategoryTollBooth  = "toll_booth"
	CategoryRestArea   = "rest_area"
	CategoryPolice     = "police"
	CategoryOther      = "other"
)

// OSMTagToCategory maps OSM tag key/value pairs to taxonomy categories
var OSMTagToCategory = map[string]map[string]string{
	"amenity": {
		"fuel":           CategoryGasStation,
		"restaurant":     CategoryRestaurant,
		"fast_food":      CategoryRestaurant,
		"cafe":           CategoryRestaurant,
		"hospital":       CategoryHospital,
		"clinic":         CategoryHospital,
		"police":         CategoryPolice,
		"toll_booth":     CategoryTollBooth,
	},
	"tourism": {
		"hotel":       CategoryHotel,
		"motel":       CategoryHotel,
		"guest_house": CategoryHotel,
		"hostel":      CategoryHotel,
		"camp_site":   CategoryCamping,
		"caravan_site": CategoryCamping,
	},
	"highway": {
		"rest_area":     CategoryRestArea,
		"services":      CategoryRestArea,
		"toll_gantry":   CategoryTollBooth,
	},
	"barrier": {
		"toll_booth": CategoryTollBooth,
	},
	"place": {
		"city":    CategoryCity,
		"town":    CategoryTown,
		"village": CategoryVillage,
		"hamlet":  CategoryVillage,
	},
}

// HERECategoryToCategory maps HERE Browse category IDs to taxonomy categories
var HERECategoryToCategory = map[string]string{
	"700-7600-0116": CategoryGasStation,
	"700-7600-0000": CategoryGasStation,
	"100-1000-0000": CategoryRestaurant,
	"100-1000-0001": CategoryRestaurant,
	"100-1100-0010": CategoryRestaurant,
	"500-5000-0000": CategoryHotel,
	"500-5000-0053": CategoryHotel,
	"500-5100-0056": CategoryCamping,
	"800-8000-0159": CategoryHospital,
	"700-7300-0111": CategoryPolice,
	"400-4300-0000": CategoryRestArea,
	"400-4300-0199": CategoryRestArea,
}

// GoogleTypeToCategory maps Google Places types to taxonomy categories
var GoogleTypeToCategory = map[string]string{
	"gas_station":    CategoryGasStation,
	"restaurant":     CategoryRestaurant,
	"meal_takeaway":  CategoryRestaurant,
	"cafe":           CategoryRestaurant,
	"lodging":        CategoryHotel,
	"campground":     CategoryCamping,
	"rv_park":        CategoryCamping,
	"hospital":       CategoryHospital,
	"police":         CategoryPolice,
	"locality":       CategoryCity,
	"rest_stop":      CategoryRestArea,
}

// MapboxCategoryToCategory maps Mapbox Search Box POI categories to taxonomy categories
var MapboxCategoryToCategory = map[string]string{
	"gas_station":  CategoryGasStation,
	"fuel_station": CategoryGasStation,
	"restaurant":   CategoryRestaurant,
	"fast_food":    CategoryRestaurant,
	"cafe":         CategoryRestaurant,
	"hotel":        CategoryHotel,
	"motel":        CategoryHotel,
	"campground":   CategoryCamping,
	"hospital":     CategoryHospital,
	"police_station": CategoryPolice,
	"rest_area":    CategoryRestArea,
}

// ExpectedTagsByCategory lists attributes expected to be present per category.
// Absent attributes are reported as missing_tags.
var ExpectedTagsByCategory = map[string][]string{
	CategoryGasStation: {"name", "address"},
	CategoryRestaurant: {"name", "phone", "address"},
	CategoryHotel:      {"name", "phone", "website", "address"},
	CategoryCamping:    {"name", "address"},
	CategoryHospital:   {"name", "phone", "address"},
	CategoryCity:       {"name"},
	CategoryTown:       {"name"},
	CategoryVillage:    {"name"},
	CategoryTollBooth:  {"name"},
	CategoryRestArea:   {"name"},
	CategoryPolice:     {"name", "phone", "address"},
	CategoryOther:      {"name"},
}

// ValidCategories returns the list of taxonomy categories
func ValidCategories() []string {
	return []string{
		CategoryGasStation,
		CategoryRestaurant,
		CategoryHotel,
		CategoryCamping,
		CategoryHospital,
		CategoryCity,
		CategoryTown,
		CategoryVillage,
		CategoryTollBooth,
		CategoryRestArea,
		CategoryPolice,
		CategoryOther,
	}
}

// IsValidCategory checks if category belongs to the taxonomy
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}
