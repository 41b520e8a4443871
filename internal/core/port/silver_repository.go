package port

import (
	"context"

	"rentals-data-platform/internal/core/domain"
)

// SilverRepositoryPort - хранилище silver-слоя (реляционное).
// Используется flow-ом bronze-to-silver.
type SilverRepositoryPort interface {
	// SaveBatch сохраняет батч объявлений одной транзакцией.
	// Повторная загрузка той же партиции перезаписывает записи
	// по (website, listing_id).
	SaveBatch(ctx context.Context, listings []domain.RentalsListing) (int, error)

	Close()
}
