package bronzestorage

import (
	"time"

	"rentals-data-platform/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// BronzeRow - строковое (row-oriented) представление одного объявления
// в bronze-parquet. Имена колонок - snake_case, как в metadata-контракте.
type BronzeRow struct {
	ListingID   string  `parquet:"listing_id"`
	URL         string  `parquet:"url"`
	Website     string  `parquet:"website"`
	PublishedAt *int64  `parquet:"published_at,optional,timestamp(microsecond)"`
	Title       string  `parquet:"title"`
	Description string  `parquet:"description"`
	Street      string  `parquet:"street"`
	City        string  `parquet:"city"`

	Neighbourhood *string  `parquet:"neighbourhood,optional"`
	Rent          *float64 `parquet:"rent,optional"`
	MoveInDate    *string  `parquet:"move_in_date,optional"`

	Bedrooms      *int32   `parquet:"bedrooms,optional"`
	Bathrooms     *int32   `parquet:"bathrooms,optional"`
	SizeSqft      *float64 `parquet:"size_sqft,optional"`
	UnitType      *string  `parquet:"unit_type,optional"`
	AgreementType *string  `parquet:"agreement_type,optional"`
	Furnished     *string  `parquet:"furnished,optional"`
	ForRentBy     *string  `parquet:"for_rent_by,optional"`

	Latitude     *float64 `parquet:"latitude,optional"`
	Longitude    *float64 `parquet:"longitude,optional"`
	WalkScore    *float64 `parquet:"walk_score,optional"`
	TransitScore *float64 `parquet:"transit_score,optional"`
	BikeScore    *float64 `parquet:"bike_score,optional"`

	// Производная колонка: геохэш координат для быстрых geo-джойнов ниже
	// по конвейеру. Пустая строка, когда координат нет.
	Geohash string `parquet:"geohash"`

	Images []string `parquet:"images,list"`

	Elevator    *string `parquet:"elevator,optional"`
	Gym         *string `parquet:"gym,optional"`
	Concierge   *string `parquet:"concierge,optional"`
	Security24h *string `parquet:"security_24h,optional"`
	Pool        *string `parquet:"pool,optional"`

	Balcony      *string `parquet:"balcony,optional"`
	Yard         *string `parquet:"yard,optional"`
	StorageSpace *string `parquet:"storage_space,optional"`

	Heat     *string `parquet:"heat,optional"`
	Water    *string `parquet:"water,optional"`
	Hydro    *string `parquet:"hydro,optional"`
	Internet *string `parquet:"internet,optional"`
	CableTV  *string `parquet:"cable_tv,optional"`

	LaundryInUnit     *string `parquet:"laundry_in_unit,optional"`
	LaundryInBuilding *string `parquet:"laundry_in_building,optional"`
	ParkingIncluded   *string `parquet:"parking_included,optional"`

	Dishwasher    *string `parquet:"dishwasher,optional"`
	FridgeFreezer *string `parquet:"fridge_freezer,optional"`

	PetFriendly          *string `parquet:"pet_friendly,optional"`
	SmokingPermitted     *string `parquet:"smoking_permitted,optional"`
	WheelchairAccessible *string `parquet:"wheelchair_accessible,optional"`
	BarrierFree          *string `parquet:"barrier_free,optional"`
	AccessibleWashrooms  *string `parquet:"accessible_washrooms,optional"`
	AudioPrompts         *string `parquet:"audio_prompts,optional"`
	VisualAids           *string `parquet:"visual_aids,optional"`
	BrailleLabels        *string `parquet:"braille_labels,optional"`

	BicycleParking  *string `parquet:"bicycle_parking,optional"`
	AirConditioning *string `parquet:"air_conditioning,optional"`

	ScrapedAt int64 `parquet:"scraped_at,timestamp(microsecond)"`
}

// toBronzeRow преобразует доменную запись в parquet-строку.
func toBronzeRow(l *domain.RentalsListing) BronzeRow {
	row := BronzeRow{
		ListingID:   l.ListingID,
		URL:         l.URL,
		Website:     l.Website,
		PublishedAt: timePtrToMicros(l.PublishedAt),
		Title:       l.Title,
		Description: l.Description,
		Street:      l.Street,
		City:        string(l.City),

		Neighbourhood: l.Neighbourhood,
		Rent:          l.Rent,
		MoveInDate:    l.MoveInDate,

		Bedrooms:      intPtrToInt32(l.Bedrooms),
		Bathrooms:     intPtrToInt32(l.Bathrooms),
		SizeSqft:      l.SizeSqft,
		UnitType:      l.UnitType,
		AgreementType: l.AgreementType,
		Furnished:     l.Furnished,
		ForRentBy:     l.ForRentBy,

		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		WalkScore:    l.WalkScore,
		TransitScore: l.TransitScore,
		BikeScore:    l.BikeScore,

		Images: l.Images,

		Elevator:    l.Elevator,
		Gym:         l.Gym,
		Concierge:   l.Concierge,
		Security24h: l.Security24h,
		Pool:        l.Pool,

		Balcony:      l.Balcony,
		Yard:         l.Yard,
		StorageSpace: l.StorageSpace,

		Heat:     l.Heat,
		Water:    l.Water,
		Hydro:    l.Hydro,
		Internet: l.Internet,
		CableTV:  l.CableTV,

		LaundryInUnit:     l.LaundryInUnit,
		LaundryInBuilding: l.LaundryInBuilding,
		ParkingIncluded:   l.ParkingIncluded,

		Dishwasher:    l.Dishwasher,
		FridgeFreezer: l.FridgeFreezer,

		PetFriendly:          l.PetFriendly,
		SmokingPermitted:     l.SmokingPermitted,
		WheelchairAccessible: l.WheelchairAccessible,
		BarrierFree:          l.BarrierFree,
		AccessibleWashrooms:  l.AccessibleWashrooms,
		AudioPrompts:         l.AudioPrompts,
		VisualAids:           l.VisualAids,
		BrailleLabels:        l.BrailleLabels,

		BicycleParking:  l.BicycleParking,
		AirConditioning: l.AirConditioning,

		ScrapedAt: l.ScrapedAt.UnixMicro(),
	}

	if l.Latitude != nil && l.Longitude != nil {
		row.Geohash = geohash.Encode(*l.Latitude, *l.Longitude)
	}

	return row
}

func timePtrToMicros(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	micros := t.UnixMicro()
	return &micros
}

func intPtrToInt32(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}
