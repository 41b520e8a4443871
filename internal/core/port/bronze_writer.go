package port

import (
	"context"

	"rentals-data-platform/internal/core/domain"
)

// BronzeWriterPort сохраняет батч объявлений в bronze-слой:
// parquet-объект плюс metadata sidecar в одной партиции.
type BronzeWriterPort interface {
	// Write сохраняет батч. Пустой батч -> StorageStatusSkipped без
	// единой записи в хранилище. Ошибка транспорта возвращается
	// вызывающему (flow обязан упасть, а не притвориться skip-ом).
	Write(
		ctx context.Context,
		listings []domain.RentalsListing,
		partition domain.ScrapePartition,
		params domain.ScrapeRunParams,
	) (*domain.StorageResult, error)
}

// BronzeReaderPort читает партиции bronze-слоя обратно в доменные записи.
// Используется flow-ом bronze-to-silver.
type BronzeReaderPort interface {
	// ReadPartition возвращает все записи партиции. Партиция без
	// metadata sidecar-а считается незавершенной и не читается.
	ReadPartition(ctx context.Context, partition domain.ScrapePartition) ([]domain.RentalsListing, error)
}
