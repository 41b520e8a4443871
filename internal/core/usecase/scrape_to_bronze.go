package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"
	"rentals-data-platform/pkg/dates"
	"rentals-data-platform/pkg/retry"
)

// ScrapeRequest - параметры одного запуска scrape-to-bronze flow.
type ScrapeRequest struct {
	City   domain.City
	Params domain.ScrapeRunParams
}

// ScrapeToBronzeUseCase - flow полного цикла: постраничный скрейпинг,
// агрегация и запись батча в bronze-слой. Ошибки отдельных страниц
// не роняют запуск, ошибка записи в хранилище - роняет.
type ScrapeToBronzeUseCase struct {
	scraper port.SiteScraperPort
	writer  port.BronzeWriterPort

	// now и retryCfg подменяются в тестах
	now      func() time.Time
	retryCfg retry.Config
}

func NewScrapeToBronzeUseCase(scraper port.SiteScraperPort, writer port.BronzeWriterPort) *ScrapeToBronzeUseCase {
	return &ScrapeToBronzeUseCase{
		scraper:  scraper,
		writer:   writer,
		now:      func() time.Time { return time.Now().UTC() },
		retryCfg: retry.Config{MaxAttempts: fetchPageMaxAttempts, Delay: fetchPageRetryDelay},
	}
}

// Execute выполняет запуск целиком и возвращает структурированный итог.
// Ошибочные исходы кодируются статусом результата, а не паникой:
// вызывающая сторона решает, чем это считать (exit code, алерт).
func (uc *ScrapeToBronzeUseCase) Execute(ctx context.Context, req ScrapeRequest) *domain.ScrapeToBronzeResult {
	runID := uuid.New().String()
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ScrapeToBronzeUseCase",
		"run_id":    runID,
		"website":   uc.scraper.Website(),
		"city":      string(req.City),
	})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	filter, err := uc.buildFilter(req.Params)
	if err != nil {
		logger.Error("Некорректные параметры запуска", err, nil)
		return &domain.ScrapeToBronzeResult{Status: domain.FlowStatusError, Error: err.Error()}
	}
	if _, ok := uc.scraper.SupportedCities()[req.City]; !ok {
		ucErr := &domain.UnsupportedCityError{Website: uc.scraper.Website(), City: req.City}
		logger.Error("Город не поддерживается источником", ucErr, nil)
		return &domain.ScrapeToBronzeResult{Status: domain.FlowStatusError, Error: ucErr.Error()}
	}

	maxPages := req.Params.MaxPages
	if maxPages < 1 {
		maxPages = 1
		// metadata sidecar обязан отражать фактический запуск
		req.Params.MaxPages = maxPages
	}
	logger.Info("Запуск scrape-to-bronze", port.Fields{
		"mode":      string(req.Params.Mode),
		"max_pages": maxPages,
	})

	startedAt := dates.FormatDate(uc.now())

	fetchPage := NewFetchAndParsePageUseCase(uc.scraper, filter)
	fetchPage.retryCfg = uc.retryCfg
	results := make([]domain.ScrapingResult, 0, maxPages)
	for page := 1; page <= maxPages; page++ {
		result, pageErr := fetchPage.Execute(ctx, req.City, page)
		if pageErr != nil {
			// Страница потеряна после всех повторов; продолжаем со следующей.
			logger.Error("Страница пропущена после всех повторов", pageErr, port.Fields{"page": page})
			continue
		}
		results = append(results, *result)
	}

	listings, failed := AggregateResults(results)
	logger.Info("Скрейпинг завершен", port.Fields{
		"total_listings":  len(listings),
		"failed_listings": failed,
	})

	if len(listings) == 0 {
		return &domain.ScrapeToBronzeResult{
			Status:         domain.FlowStatusCompletedNoData,
			FailedListings: failed,
		}
	}

	partition := domain.ScrapePartition{
		Source: uc.scraper.Website(),
		City:   req.City,
		Date:   startedAt,
	}
	storageResult, err := uc.writer.Write(ctx, listings, partition, req.Params)
	if err != nil {
		logger.Error("Запись в bronze-слой не удалась", err, nil)
		return &domain.ScrapeToBronzeResult{
			Status:         domain.FlowStatusError,
			TotalListings:  len(listings),
			FailedListings: failed,
			Storage:        storageResult,
			Error:          err.Error(),
		}
	}

	logger.Info("Батч сохранен в bronze-слой", port.Fields{
		"path":  storageResult.Path,
		"count": storageResult.Count,
	})
	return &domain.ScrapeToBronzeResult{
		Status:         domain.FlowStatusSuccess,
		TotalListings:  len(listings),
		FailedListings: failed,
		Storage:        storageResult,
	}
}

// buildFilter переводит параметры запуска в настроенный DateFilter.
func (uc *ScrapeToBronzeUseCase) buildFilter(params domain.ScrapeRunParams) (*domain.DateFilter, error) {
	switch params.Mode {
	case domain.ModeLastXDays:
		if params.Days < 1 {
			return nil, fmt.Errorf("mode %s requires days >= 1, got %d", params.Mode, params.Days)
		}
		return domain.NewLastXDaysFilter(params.Days), nil
	case domain.ModeSpecificDate:
		return domain.NewSpecificDateFilter(params.SpecificDate), nil
	default:
		return nil, fmt.Errorf("unknown scraper mode %q", params.Mode)
	}
}
