package usecase

import (
	"context"
	"fmt"
	"time"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"
	"rentals-data-platform/pkg/retry"
)

const (
	fetchPageMaxAttempts = 3
	fetchPageRetryDelay  = 2 * time.Second
)

// FetchAndParsePageUseCase - задача обработки одной страницы поисковой выдачи:
// загрузить страницу (с повторами), разобрать объявления и применить фильтр
// по дате публикации. Фильтр общий для всех сайтов и применяется здесь,
// а не внутри скрейпера.
type FetchAndParsePageUseCase struct {
	scraper  port.SiteScraperPort
	filter   *domain.DateFilter
	retryCfg retry.Config
}

func NewFetchAndParsePageUseCase(scraper port.SiteScraperPort, filter *domain.DateFilter) *FetchAndParsePageUseCase {
	return &FetchAndParsePageUseCase{
		scraper: scraper,
		filter:  filter,
		retryCfg: retry.Config{
			MaxAttempts: fetchPageMaxAttempts,
			Delay:       fetchPageRetryDelay,
		},
	}
}

// Execute обрабатывает страницу page для города city.
// Ошибку возвращает только при исчерпании всех попыток загрузки;
// битые объявления внутри страницы учитываются в FailedListings.
func (uc *FetchAndParsePageUseCase) Execute(ctx context.Context, city domain.City, page int) (*domain.ScrapingResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FetchAndParsePageUseCase",
		"city":      string(city),
		"page":      page,
	})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	var raw *domain.RawPage
	err := retry.Do(ctx, uc.retryCfg, fmt.Sprintf("fetch page %d", page), func() error {
		var fetchErr error
		raw, fetchErr = uc.scraper.FetchPage(ctx, city, page)
		if fetchErr != nil {
			logger.Warn("Не удалось загрузить страницу, будет повтор", port.Fields{"error": fetchErr.Error()})
		}
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	listings, failed := uc.scraper.ParsePageItems(ctx, raw, city)

	kept, dropped := uc.filter.Apply(listings)
	if dropped > 0 {
		logger.Info("Часть объявлений отсеяна фильтром по дате", port.Fields{
			"dropped": dropped,
			"kept":    len(kept),
		})
	}

	return &domain.ScrapingResult{
		PageNumber:     page,
		Listings:       kept,
		FailedListings: failed,
	}, nil
}
