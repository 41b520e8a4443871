package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"
)

// BronzeToSilverUseCase - flow загрузки одной bronze-партиции в silver-слой.
// Партиции без metadata sidecar-а (незавершенная запись) пропускаются:
// их дозапишет или перезапишет следующий запуск скрейпера.
type BronzeToSilverUseCase struct {
	reader port.BronzeReaderPort
	repo   port.SilverRepositoryPort
}

func NewBronzeToSilverUseCase(reader port.BronzeReaderPort, repo port.SilverRepositoryPort) *BronzeToSilverUseCase {
	return &BronzeToSilverUseCase{reader: reader, repo: repo}
}

// Execute читает партицию и сохраняет ее записи одной транзакцией.
func (uc *BronzeToSilverUseCase) Execute(ctx context.Context, partition domain.ScrapePartition) *domain.BronzeToSilverResult {
	runID := uuid.New().String()
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BronzeToSilverUseCase",
		"run_id":    runID,
		"source":    partition.Source,
		"city":      string(partition.City),
		"dt":        partition.Date,
	})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	result := &domain.BronzeToSilverResult{
		Source:        partition.Source,
		City:          string(partition.City),
		PartitionDate: partition.Date,
	}

	listings, err := uc.reader.ReadPartition(ctx, partition)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPartitionIncomplete):
			logger.Warn("Партиция без metadata sidecar-а, пропускаем", nil)
			result.Status = domain.FlowStatusCompletedNoData
			result.Error = err.Error()
		case errors.Is(err, domain.ErrPartitionEmpty):
			logger.Info("Партиция пуста, загружать нечего", nil)
			result.Status = domain.FlowStatusCompletedNoData
		default:
			logger.Error("Не удалось прочитать партицию", err, nil)
			result.Status = domain.FlowStatusError
			result.Error = err.Error()
		}
		return result
	}
	result.RecordsRead = len(listings)

	loaded, err := uc.repo.SaveBatch(ctx, listings)
	if err != nil {
		logger.Error("Не удалось сохранить батч в silver-слой", err, nil)
		result.Status = domain.FlowStatusError
		result.Error = err.Error()
		return result
	}
	result.RecordsLoaded = loaded

	logger.Info("Партиция загружена в silver-слой", port.Fields{
		"records_read":   result.RecordsRead,
		"records_loaded": result.RecordsLoaded,
	})
	result.Status = domain.FlowStatusSuccess
	return result
}
