package constants

import "rentals-data-platform/internal/core/domain"

// Kijiji endpoints
const (
	KijijiWebsiteName = "kijiji"
	KijijiBaseURL     = "https://www.kijiji.ca/b-apartments-condos"
)

// KijijiCityPaths - маппинг City -> сегмент пути поисковой выдачи Kijiji.
// Сегмент включает технический ID локации (l17...).
var KijijiCityPaths = map[domain.City]string{
	domain.CityToronto:   "city-of-toronto/c37l1700273",
	domain.CityVancouver: "vancouver/c37l1700287",
	domain.CityLondon:    "london/c37l1700214",
}

// Порог дизамбигуации цены: сырые значения > 100 закодированы в центах
// и делятся на 100, значения <= 100 уже в полных долларах.
// Граница эвристическая, подобрана по реальным данным Kijiji.
const KijijiPriceCentsThreshold = 100

// KijijiAttributeMap - "словарь-переводчик" для Kijiji: имя атрибута
// на сайте -> имя поля RentalsListing (snake_case, как в bronze-схеме).
var KijijiAttributeMap = map[string]string{
	"Bedrooms":                         "bedrooms",
	"Bathrooms":                        "bathrooms",
	"Size (sqft)":                      "size_sqft",
	"Unit Type":                        "unit_type",
	"Agreement Type":                   "agreement_type",
	"Furnished":                        "furnished",
	"For Rent By":                      "for_rent_by",
	"Move-In Date":                     "move_in_date",
	"Elevator in Building":             "elevator",
	"Gym":                              "gym",
	"Concierge":                        "concierge",
	"24 Hour Security":                 "security_24h",
	"Pool":                             "pool",
	"Balcony":                          "balcony",
	"Yard":                             "yard",
	"Storage Space":                    "storage_space",
	"Heat":                             "heat",
	"Water":                            "water",
	"Hydro":                            "hydro",
	"Internet":                         "internet",
	"Cable / TV":                       "cable_tv",
	"Laundry (In Unit)":                "laundry_in_unit",
	"Laundry (In Building)":            "laundry_in_building",
	"Parking Included":                 "parking_included",
	"Dishwasher":                       "dishwasher",
	"Fridge / Freezer":                 "fridge_freezer",
	"Pet Friendly":                     "pet_friendly",
	"Smoking Permitted":                "smoking_permitted",
	"Wheelchair accessible":            "wheelchair_accessible",
	"Barrier-free Entrances and Ramps": "barrier_free",
	"Accessible Washrooms in Suite":    "accessible_washrooms",
	"Audio Prompts":                    "audio_prompts",
	"Visual Aids":                      "visual_aids",
	"Braille Labels":                   "braille_labels",
	"Bicycle Parking":                  "bicycle_parking",
	"Air Conditioning":                 "air_conditioning",
}
