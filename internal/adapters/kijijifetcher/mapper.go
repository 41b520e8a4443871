package kijijifetcher

import (
	"time"

	"rentals-data-platform/internal/constants"
	"rentals-data-platform/internal/core/domain"
)

// mapListingDetail - главный метод-трансформер: преобразует тело
// detail-страницы в валидированную доменную запись.
func mapListingDetail(body []byte, listingURL string, city domain.City) (*domain.RentalsListing, error) {
	state, err := decodeNextData(body)
	if err != nil {
		return nil, err
	}

	attrs := extractAttributes(state.Listing)

	// Нормализация цены: сырые значения > 100 закодированы в центах.
	var rent *float64
	if amount := state.Listing.Price.Amount; amount != nil {
		value := *amount
		if value > constants.KijijiPriceCentsThreshold {
			value = value / 100
		}
		rent = &value
	}

	// activationDate берем из записи, с fallback-ом на уровень pageProps
	activation := state.Listing.ActivationDate
	if activation == "" {
		activation = state.FallbackActivation
	}
	publishedAt := parseActivationDate(activation)

	var neighbourhood *string
	var walkScore, transitScore, bikeScore *float64
	if nb := state.resolveNeighbourhood(); nb != nil {
		if nb.Name != "" {
			name := nb.Name
			neighbourhood = &name
		}
		walkScore = nb.Scores.Transportation.Walk.Score
		transitScore = nb.Scores.Transportation.Transit.Score
		bikeScore = nb.Scores.Transportation.Cycle.Score
	}

	listing := domain.RentalsListing{
		ListingID:   state.ListingID,
		URL:         listingURL,
		Website:     constants.KijijiWebsiteName,
		PublishedAt: publishedAt,

		Title:         state.Listing.Title,
		Description:   state.Listing.Description,
		Street:        state.Listing.Location.Address,
		City:          city,
		Neighbourhood: neighbourhood,

		Rent:       rent,
		MoveInDate: rawAttr(attrs, "move_in_date"),

		Bedrooms:      parseInt(attrs["bedrooms"]),
		Bathrooms:     parseInt(attrs["bathrooms"]),
		SizeSqft:      parseFloat(attrs["size_sqft"]),
		UnitType:      rawAttr(attrs, "unit_type"),
		AgreementType: rawAttr(attrs, "agreement_type"),
		Furnished:     answerAttr(attrs, "furnished"),
		ForRentBy:     rawAttr(attrs, "for_rent_by"),

		Latitude:     state.Listing.Location.Coordinates.Latitude,
		Longitude:    state.Listing.Location.Coordinates.Longitude,
		WalkScore:    walkScore,
		TransitScore: transitScore,
		BikeScore:    bikeScore,

		Images: state.Listing.ImageURLs,
	}

	// Флаги удобств: строковые "Yes"/"No"/nil
	listing.Elevator = answerAttr(attrs, "elevator")
	listing.Gym = answerAttr(attrs, "gym")
	listing.Concierge = answerAttr(attrs, "concierge")
	listing.Security24h = answerAttr(attrs, "security_24h")
	listing.Pool = answerAttr(attrs, "pool")
	listing.Balcony = answerAttr(attrs, "balcony")
	listing.Yard = answerAttr(attrs, "yard")
	listing.StorageSpace = answerAttr(attrs, "storage_space")
	listing.Heat = answerAttr(attrs, "heat")
	listing.Water = answerAttr(attrs, "water")
	listing.Hydro = answerAttr(attrs, "hydro")
	listing.Internet = answerAttr(attrs, "internet")
	listing.CableTV = answerAttr(attrs, "cable_tv")
	listing.LaundryInUnit = answerAttr(attrs, "laundry_in_unit")
	listing.LaundryInBuilding = answerAttr(attrs, "laundry_in_building")
	listing.ParkingIncluded = answerAttr(attrs, "parking_included")
	listing.Dishwasher = answerAttr(attrs, "dishwasher")
	listing.FridgeFreezer = answerAttr(attrs, "fridge_freezer")
	listing.PetFriendly = answerAttr(attrs, "pet_friendly")
	listing.SmokingPermitted = answerAttr(attrs, "smoking_permitted")
	listing.WheelchairAccessible = answerAttr(attrs, "wheelchair_accessible")
	listing.BarrierFree = answerAttr(attrs, "barrier_free")
	listing.AccessibleWashrooms = answerAttr(attrs, "accessible_washrooms")
	listing.AudioPrompts = answerAttr(attrs, "audio_prompts")
	listing.VisualAids = answerAttr(attrs, "visual_aids")
	listing.BrailleLabels = answerAttr(attrs, "braille_labels")
	listing.BicycleParking = answerAttr(attrs, "bicycle_parking")
	listing.AirConditioning = answerAttr(attrs, "air_conditioning")

	return domain.NewRentalsListing(listing)
}

// extractAttributes преобразует массив атрибутов Kijiji в карту
// "имя поля записи -> сырое строковое значение". Атрибуты без
// перевода в KijijiAttributeMap отбрасываются.
func extractAttributes(listing listingState) map[string]string {
	attrs := make(map[string]string, len(listing.Attributes.All))
	for _, entry := range listing.Attributes.All {
		field, ok := constants.KijijiAttributeMap[entry.Name]
		if !ok {
			continue
		}
		attrs[field] = attributeValueToString(entry.Values)
	}
	return attrs
}

// rawAttr возвращает значение атрибута как есть или nil.
func rawAttr(attrs map[string]string, key string) *string {
	v, ok := attrs[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// answerAttr возвращает нормализованное значение-ответ или nil.
func answerAttr(attrs map[string]string, key string) *string {
	v, ok := attrs[key]
	if !ok || v == "" {
		return nil
	}
	normalized := normalizeAnswer(v)
	return &normalized
}

// parseActivationDate разбирает ISO-8601 дату вида "2026-02-12T08:03:15.000Z".
// Возвращает nil при любой ошибке формата, а не ошибку.
func parseActivationDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
