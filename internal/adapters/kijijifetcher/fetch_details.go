package kijijifetcher

import (
	"context"
	"fmt"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// fetchDetailPage загружает тело detail-страницы объявления.
// Задержка вежливости обеспечивается LimitRule родительского коллектора.
func (a *KijijiFetcherAdapter) fetchDetailPage(ctx context.Context, listingURL string) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	detailLogger := logger.WithFields(port.Fields{"component": "KijijiFetcherAdapter(FetchDetails)"})

	collector := a.collector.Clone()

	var body []byte
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		detailLogger.Debug("Making request to fetch listing details", port.Fields{
			"url": r.URL.String(),
		})
	})

	collector.OnResponse(func(r *colly.Response) {
		if fetchErr != nil || body != nil {
			return
		}
		body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		detailLogger.Error("Failed to fetch listing details", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		fetchErr = &domain.FetchError{URL: r.Request.URL.String(), StatusCode: r.StatusCode, Err: err}
	})

	if visitErr := collector.Visit(listingURL); visitErr != nil {
		return nil, &domain.FetchError{URL: listingURL, Err: visitErr}
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if body == nil {
		return nil, &domain.FetchError{URL: listingURL, Err: fmt.Errorf("no response received")}
	}
	return body, nil
}

// parseListingDetail загружает и разбирает detail-страницу.
// Любая ошибка (сеть, структура, валидация) понижается до nil + warn:
// одна битая запись никогда не останавливает обработку страницы.
func (a *KijijiFetcherAdapter) parseListingDetail(ctx context.Context, listingURL string, city domain.City) *domain.RentalsListing {
	logger := contextkeys.LoggerFromContext(ctx)
	detailLogger := logger.WithFields(port.Fields{"component": "KijijiFetcherAdapter(FetchDetails)"})

	body, err := a.fetchDetailPage(ctx, listingURL)
	if err != nil {
		detailLogger.Warn("Skipping listing: detail page fetch failed", port.Fields{
			"url":   listingURL,
			"error": err.Error(),
		})
		return nil
	}

	listing, err := mapListingDetail(body, listingURL, city)
	if err != nil {
		detailLogger.Warn("Skipping listing: detail page parse failed", port.Fields{
			"url":   listingURL,
			"error": err.Error(),
		})
		return nil
	}

	return listing
}
