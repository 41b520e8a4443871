package bronzestorage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"

	"github.com/parquet-go/parquet-go"
)

// ReadPartition читает все parquet-объекты партиции обратно в доменные записи.
func (a *BronzeStorageAdapter) ReadPartition(ctx context.Context, partition domain.ScrapePartition) ([]domain.RentalsListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "BronzeStorageAdapter(Read)"})

	prefix := partitionDir(partition) + "/"
	keys, err := a.storage.ListObjects(ctx, a.bucket, prefix, true)
	if err != nil {
		return nil, fmt.Errorf("bronzestorage: failed to list partition %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil, domain.ErrPartitionEmpty
	}

	hasMetadata := false
	var parquetKeys []string
	for _, key := range keys {
		switch {
		case strings.HasSuffix(key, "/_metadata.json"):
			hasMetadata = true
		case strings.HasSuffix(key, ".parquet"):
			parquetKeys = append(parquetKeys, key)
		}
	}
	if !hasMetadata {
		return nil, domain.ErrPartitionIncomplete
	}

	var listings []domain.RentalsListing
	for _, key := range parquetKeys {
		data, err := a.storage.GetObject(ctx, a.bucket, key)
		if err != nil {
			return nil, fmt.Errorf("bronzestorage: failed to read %s: %w", key, err)
		}

		rows, err := parquet.Read[BronzeRow](bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("bronzestorage: failed to decode %s: %w", key, err)
		}

		for i := range rows {
			listings = append(listings, fromBronzeRow(&rows[i]))
		}
		logger.Debug("Read parquet object", port.Fields{"key": key, "rows": len(rows)})
	}

	logger.Info("Partition read", port.Fields{"prefix": prefix, "records": len(listings)})
	return listings, nil
}

// fromBronzeRow восстанавливает доменную запись из parquet-строки.
// Производная колонка geohash при чтении отбрасывается.
func fromBronzeRow(r *BronzeRow) domain.RentalsListing {
	return domain.RentalsListing{
		ListingID:   r.ListingID,
		URL:         r.URL,
		Website:     r.Website,
		PublishedAt: microsToTimePtr(r.PublishedAt),

		Title:         r.Title,
		Description:   r.Description,
		Street:        r.Street,
		City:          domain.City(r.City),
		Neighbourhood: r.Neighbourhood,

		Rent:       r.Rent,
		MoveInDate: r.MoveInDate,

		Bedrooms:      int32PtrToInt(r.Bedrooms),
		Bathrooms:     int32PtrToInt(r.Bathrooms),
		SizeSqft:      r.SizeSqft,
		UnitType:      r.UnitType,
		AgreementType: r.AgreementType,
		Furnished:     r.Furnished,
		ForRentBy:     r.ForRentBy,

		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		WalkScore:    r.WalkScore,
		TransitScore: r.TransitScore,
		BikeScore:    r.BikeScore,

		Images: r.Images,

		Elevator:    r.Elevator,
		Gym:         r.Gym,
		Concierge:   r.Concierge,
		Security24h: r.Security24h,
		Pool:        r.Pool,

		Balcony:      r.Balcony,
		Yard:         r.Yard,
		StorageSpace: r.StorageSpace,

		Heat:     r.Heat,
		Water:    r.Water,
		Hydro:    r.Hydro,
		Internet: r.Internet,
		CableTV:  r.CableTV,

		LaundryInUnit:     r.LaundryInUnit,
		LaundryInBuilding: r.LaundryInBuilding,
		ParkingIncluded:   r.ParkingIncluded,

		Dishwasher:    r.Dishwasher,
		FridgeFreezer: r.FridgeFreezer,

		PetFriendly:          r.PetFriendly,
		SmokingPermitted:     r.SmokingPermitted,
		WheelchairAccessible: r.WheelchairAccessible,
		BarrierFree:          r.BarrierFree,
		AccessibleWashrooms:  r.AccessibleWashrooms,
		AudioPrompts:         r.AudioPrompts,
		VisualAids:           r.VisualAids,
		BrailleLabels:        r.BrailleLabels,

		BicycleParking:  r.BicycleParking,
		AirConditioning: r.AirConditioning,

		ScrapedAt: time.UnixMicro(r.ScrapedAt).UTC(),
	}
}

func microsToTimePtr(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.UnixMicro(*v).UTC()
	return &t
}

func int32PtrToInt(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
