package postgres_adapter

import (
	"context"
	"fmt"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresListingRepository - silver-слой: реляционное хранилище объявлений.
// Пул создается в composition root (pkg/postgres) и передается сюда.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres: pool is required")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

const upsertListingSQL = `
INSERT INTO rental_listings (
    listing_id, url, website, published_at, title, description,
    street, city, neighbourhood, rent, move_in_date,
    bedrooms, bathrooms, size_sqft, unit_type, agreement_type,
    latitude, longitude, walk_score, transit_score, bike_score,
    images, scraped_at
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11,
    $12, $13, $14, $15, $16,
    $17, $18, $19, $20, $21,
    $22, $23
)
ON CONFLICT (website, listing_id) DO UPDATE SET
    url = EXCLUDED.url,
    published_at = EXCLUDED.published_at,
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    street = EXCLUDED.street,
    city = EXCLUDED.city,
    neighbourhood = EXCLUDED.neighbourhood,
    rent = EXCLUDED.rent,
    move_in_date = EXCLUDED.move_in_date,
    bedrooms = EXCLUDED.bedrooms,
    bathrooms = EXCLUDED.bathrooms,
    size_sqft = EXCLUDED.size_sqft,
    unit_type = EXCLUDED.unit_type,
    agreement_type = EXCLUDED.agreement_type,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude,
    walk_score = EXCLUDED.walk_score,
    transit_score = EXCLUDED.transit_score,
    bike_score = EXCLUDED.bike_score,
    images = EXCLUDED.images,
    scraped_at = EXCLUDED.scraped_at`

// SaveBatch сохраняет батч одной транзакцией через pgx.Batch.
// Перезагрузка той же партиции - upsert по (website, listing_id).
func (r *PostgresListingRepository) SaveBatch(ctx context.Context, listings []domain.RentalsListing) (int, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PostgresListingRepository"})

	if len(listings) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range listings {
		l := &listings[i]
		batch.Queue(upsertListingSQL,
			l.ListingID, l.URL, l.Website, l.PublishedAt, l.Title, l.Description,
			l.Street, string(l.City), l.Neighbourhood, l.Rent, l.MoveInDate,
			l.Bedrooms, l.Bathrooms, l.SizeSqft, l.UnitType, l.AgreementType,
			l.Latitude, l.Longitude, l.WalkScore, l.TransitScore, l.BikeScore,
			l.Images, l.ScrapedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range listings {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("postgres: batch upsert failed: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("postgres: failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit: %w", err)
	}

	logger.Info("Batch upserted", port.Fields{"records": len(listings)})
	return len(listings), nil
}

func (r *PostgresListingRepository) Close() {
	r.pool.Close()
}
