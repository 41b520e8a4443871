package bronzestorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/contracts"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"

	"github.com/parquet-go/parquet-go"
)

// BronzeStorageAdapter сохраняет батчи объявлений в bronze-слой
// объектного хранилища: parquet-объект + metadata sidecar.
type BronzeStorageAdapter struct {
	storage port.ObjectStoragePort
	bucket  string
}

func NewBronzeStorageAdapter(storage port.ObjectStoragePort, bucket string) (*BronzeStorageAdapter, error) {
	if storage == nil {
		return nil, fmt.Errorf("bronzestorage: object storage is required")
	}
	return &BronzeStorageAdapter{storage: storage, bucket: bucket}, nil
}

// scrapeMetadata - metadata sidecar партиции.
type scrapeMetadata struct {
	Mode         string  `json:"mode"`
	Days         int     `json:"days"`
	SpecificDate *string `json:"specific_date"`
	MaxPages     int     `json:"max_pages"`
	RecordCount  int     `json:"record_count"`
	SavedAt      string  `json:"saved_at"`
}

// partitionDir строит префикс партиции:
// listings/source={source}/city={city}/dt={YYYY-MM-DD}
func partitionDir(p domain.ScrapePartition) string {
	return fmt.Sprintf("listings/source=%s/city=%s/dt=%s", p.Source, p.City, p.Date)
}

// Write сериализует батч в parquet и загружает его вместе с metadata.
// Пустой батч -> StorageStatusSkipped без единой записи в хранилище.
// Повторная запись в ту же партицию перезаписывает объекты (last-writer-wins).
func (a *BronzeStorageAdapter) Write(
	ctx context.Context,
	listings []domain.RentalsListing,
	partition domain.ScrapePartition,
	params domain.ScrapeRunParams,
) (*domain.StorageResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "BronzeStorageAdapter"})

	if len(listings) == 0 {
		logger.Warn("No listings to save, skipping write", port.Fields{"partition": partitionDir(partition)})
		return &domain.StorageResult{
			Status: domain.StorageStatusSkipped,
			Reason: "empty_listings",
		}, nil
	}

	baseDir := partitionDir(partition)
	datestamp := strings.ReplaceAll(partition.Date, "-", "")
	parquetPath := fmt.Sprintf("%s/listings_%s.parquet", baseDir, datestamp)
	metadataPath := fmt.Sprintf("%s/_metadata.json", baseDir)

	parquetBytes, err := serializeBatch(listings)
	if err != nil {
		return nil, fmt.Errorf("bronzestorage: failed to serialize batch: %w", err)
	}

	logger.Info("Uploading listings batch", port.Fields{
		"path":         parquetPath,
		"record_count": len(listings),
		"bytes":        len(parquetBytes),
	})

	if err := a.storage.PutObject(ctx, a.bucket, parquetPath, parquetBytes, "application/octet-stream"); err != nil {
		storageErr := &domain.StorageError{Path: parquetPath, Err: err}
		return &domain.StorageResult{
			Status: domain.StorageStatusFailed,
			Path:   parquetPath,
			Reason: storageErr.Error(),
		}, storageErr
	}

	metadataBytes, err := a.buildMetadata(len(listings), params)
	if err != nil {
		return nil, fmt.Errorf("bronzestorage: failed to build metadata: %w", err)
	}

	if err := a.storage.PutObject(ctx, a.bucket, metadataPath, metadataBytes, "application/json"); err != nil {
		// Parquet уже загружен; без sidecar-а партиция считается
		// незавершенной и будет проигнорирована bronze-to-silver.
		storageErr := &domain.StorageError{Path: metadataPath, Err: err}
		return &domain.StorageResult{
			Status: domain.StorageStatusFailed,
			Path:   parquetPath,
			Reason: storageErr.Error(),
		}, storageErr
	}

	logger.Info("Batch saved", port.Fields{
		"path":          parquetPath,
		"metadata_path": metadataPath,
		"record_count":  len(listings),
	})

	return &domain.StorageResult{
		Status:       domain.StorageStatusSuccess,
		Path:         fmt.Sprintf("%s/%s", a.bucket, parquetPath),
		MetadataPath: fmt.Sprintf("%s/%s", a.bucket, metadataPath),
		Count:        len(listings),
	}, nil
}

// serializeBatch преобразует батч в row-oriented таблицу и пишет parquet
// со snappy-сжатием.
func serializeBatch(listings []domain.RentalsListing) ([]byte, error) {
	rows := make([]BronzeRow, len(listings))
	for i := range listings {
		rows[i] = toBronzeRow(&listings[i])
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[BronzeRow](&buf, parquet.Compression(&parquet.Snappy))
	if _, err := writer.Write(rows); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildMetadata собирает sidecar и проверяет его по контрактной схеме.
func (a *BronzeStorageAdapter) buildMetadata(recordCount int, params domain.ScrapeRunParams) ([]byte, error) {
	meta := scrapeMetadata{
		Mode:        string(params.Mode),
		Days:        params.Days,
		MaxPages:    params.MaxPages,
		RecordCount: recordCount,
		SavedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if params.SpecificDate != nil {
		d := params.SpecificDate.UTC().Format("2006-01-02")
		meta.SpecificDate = &d
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	if err := contracts.ValidateScrapeMetadata(payload); err != nil {
		return nil, err
	}
	return payload, nil
}
