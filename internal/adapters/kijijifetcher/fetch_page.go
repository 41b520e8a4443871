package kijijifetcher

import (
	"context"
	"fmt"
	"time"

	"rentals-data-platform/internal/contextkeys"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// FetchPage загружает одну страницу поисковой выдачи Kijiji.
// Неподдерживаемый город отклоняется до любого сетевого вызова.
func (a *KijijiFetcherAdapter) FetchPage(ctx context.Context, city domain.City, page int) (*domain.RawPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "KijijiFetcherAdapter(FetchPage)"})

	cityPath, ok := a.SupportedCities()[city]
	if !ok {
		return nil, &domain.UnsupportedCityError{Website: a.Website(), City: city}
	}

	targetURL := fmt.Sprintf("%s/%s?page=%d", a.baseURL, cityPath, page)

	// Одноразовый клон: наследует лимиты, но имеет свои обработчики
	collector := a.collector.Clone()

	var rawPage *domain.RawPage
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making request to fetch search page", port.Fields{
			"url":  r.URL.String(),
			"page": page,
		})
	})

	collector.OnResponse(func(r *colly.Response) {
		if fetchErr != nil || rawPage != nil {
			return
		}
		rawPage = &domain.RawPage{
			URL:       r.Request.URL.String(),
			Body:      r.Body,
			FetchedAt: time.Now().UTC(),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch search page", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		fetchErr = &domain.FetchError{URL: r.Request.URL.String(), StatusCode: r.StatusCode, Err: err}
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		return nil, &domain.FetchError{URL: targetURL, Err: visitErr}
	}
	collector.Wait() // Ждем завершения HTTP запроса

	if fetchErr != nil {
		return nil, fetchErr
	}
	if rawPage == nil {
		return nil, &domain.FetchError{URL: targetURL, Err: fmt.Errorf("no response received")}
	}

	fetchLogger.Info("Fetched search page", port.Fields{
		"url":        rawPage.URL,
		"page":       page,
		"body_bytes": len(rawPage.Body),
	})

	return rawPage, nil
}
