package kijijifetcher

import (
	"context"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"
)

// ParseListing разбирает одну запись поисковой выдачи: извлекает URL
// detail-страницы и строит доменную запись. Возвращает nil (не ошибку)
// при любом структурном сбое.
func (a *KijijiFetcherAdapter) ParseListing(ctx context.Context, item searchItem, city domain.City) *domain.RentalsListing {
	if item.Item.URL == "" {
		return nil
	}
	return a.parseListingDetail(ctx, item.Item.URL, city)
}

// ParsePageItems разбирает все объявления со страницы поисковой выдачи.
// Возвращает успешно разобранные записи и количество сбоев.
// Фильтр по дате применяется выше, use case-ом FetchAndParsePage.
func (a *KijijiFetcherAdapter) ParsePageItems(ctx context.Context, raw *domain.RawPage, city domain.City) ([]domain.RentalsListing, int) {
	logger := contextkeys.LoggerFromContext(ctx)
	pageLogger := logger.WithFields(port.Fields{"component": "KijijiFetcherAdapter(ParsePage)"})

	itemList, err := decodeSearchItemList(raw.Body)
	if err != nil {
		pageLogger.Warn("No parseable listing data on search page", port.Fields{
			"url":   raw.URL,
			"error": err.Error(),
		})
		return nil, 0
	}

	var listings []domain.RentalsListing
	failed := 0

	for _, item := range itemList.ItemListElement {
		listing := a.ParseListing(ctx, item, city)
		if listing == nil {
			failed++
			continue
		}
		listings = append(listings, *listing)
	}

	pageLogger.Info("Parsed search page", port.Fields{
		"url":    raw.URL,
		"parsed": len(listings),
		"failed": failed,
		"city":   string(city),
	})

	return listings, failed
}
