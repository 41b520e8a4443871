package domain

import (
	"fmt"
	"net/url"
	"time"
)

// City перечисляет города, которые поддерживаются скрейперами.
type City string

const (
	CityToronto   City = "toronto"
	CityVancouver City = "vancouver"
	CityLondon    City = "london"
)

// SupportedCities - полный список допустимых значений City.
var SupportedCities = []City{CityToronto, CityVancouver, CityLondon}

// ParseCity преобразует строку в City или возвращает ошибку валидации.
func ParseCity(s string) (City, error) {
	for _, c := range SupportedCities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "city", Reason: fmt.Sprintf("unknown city %q, supported: %v", s, SupportedCities)}
}

// RentalsListing - главная структура для одного арендного объявления.
// После успешного конструирования запись считается неизменяемой:
// она сериализуется в bronze-партицию как есть.
type RentalsListing struct {
	// Идентификация
	ListingID   string
	URL         string
	Website     string
	PublishedAt *time.Time

	// Описание
	Title         string
	Description   string
	Street        string
	City          City
	Neighbourhood *string

	// Цена и даты
	Rent       *float64
	MoveInDate *string

	// Характеристики объекта
	Bedrooms      *int
	Bathrooms     *int
	SizeSqft      *float64
	UnitType      *string
	AgreementType *string
	Furnished     *string
	ForRentBy     *string

	// Геоданные
	Latitude     *float64
	Longitude    *float64
	WalkScore    *float64
	TransitScore *float64
	BikeScore    *float64

	// Медиа
	Images []string

	// Удобства - инфраструктура здания
	Elevator    *string
	Gym         *string
	Concierge   *string
	Security24h *string
	Pool        *string

	// Удобства - жилые
	Balcony      *string
	Yard         *string
	StorageSpace *string

	// Удобства - коммунальные услуги
	Heat     *string
	Water    *string
	Hydro    *string
	Internet *string
	CableTV  *string

	// Удобства - стирка и парковка
	LaundryInUnit     *string
	LaundryInBuilding *string
	ParkingIncluded   *string

	// Удобства - кухня
	Dishwasher    *string
	FridgeFreezer *string

	// Удобства - животные и доступность
	PetFriendly          *string
	SmokingPermitted     *string
	WheelchairAccessible *string
	BarrierFree          *string
	AccessibleWashrooms  *string
	AudioPrompts         *string
	VisualAids           *string
	BrailleLabels        *string

	// Удобства - прочее
	BicycleParking  *string
	AirConditioning *string

	// Метаданные
	ScrapedAt time.Time
}

// NewRentalsListing валидирует запись и проставляет ScrapedAt.
// Возвращает *ValidationError при нарушении любого инварианта.
func NewRentalsListing(listing RentalsListing) (*RentalsListing, error) {
	if listing.ScrapedAt.IsZero() {
		listing.ScrapedAt = time.Now().UTC()
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Validate проверяет инварианты записи.
func (l *RentalsListing) Validate() error {
	if l.ListingID == "" {
		return &ValidationError{Field: "listing_id", Reason: "must not be empty"}
	}
	if _, err := ParseCity(string(l.City)); err != nil {
		return err
	}
	u, err := url.Parse(l.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: "url", Reason: fmt.Sprintf("%q is not an absolute http(s) URL", l.URL)}
	}
	if l.PublishedAt != nil && l.PublishedAt.After(time.Now().UTC()) {
		return &ValidationError{Field: "published_at", Reason: "must not be in the future"}
	}
	if l.Rent != nil && *l.Rent < 0 {
		return &ValidationError{Field: "rent", Reason: "must be non-negative"}
	}
	if l.Bedrooms != nil && *l.Bedrooms < 0 {
		return &ValidationError{Field: "bedrooms", Reason: "must be non-negative"}
	}
	if l.Bathrooms != nil && *l.Bathrooms < 0 {
		return &ValidationError{Field: "bathrooms", Reason: "must be non-negative"}
	}
	if l.SizeSqft != nil && *l.SizeSqft < 0 {
		return &ValidationError{Field: "size_sqft", Reason: "must be non-negative"}
	}
	for field, score := range map[string]*float64{
		"walk_score":    l.WalkScore,
		"transit_score": l.TransitScore,
		"bike_score":    l.BikeScore,
	} {
		if score != nil && (*score < 0 || *score > 10) {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("%.2f is outside [0,10]", *score)}
		}
	}
	return nil
}
