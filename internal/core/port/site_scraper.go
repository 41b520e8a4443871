package port

import (
	"context"

	"rentals-data-platform/internal/core/domain"
)

// SiteScraperPort объединяет все операции, которые можно выполнить
// с одним сайтом-источником. Одна реализация на сайт.
//
// Фильтрация по дате НЕ входит в контракт: она применяется единообразно
// поверх ParsePageItems use case-ом FetchAndParsePage (композиция вместо
// переопределяемого template method).
type SiteScraperPort interface {
	// Website - каноническое имя источника (например "kijiji").
	Website() string

	// BaseURL - базовый URL поисковой выдачи сайта.
	BaseURL() string

	// SupportedCities - маппинг City -> site-специфичный сегмент пути.
	SupportedCities() map[domain.City]string

	// FetchPage загружает одну страницу поисковой выдачи.
	// Возвращает *domain.UnsupportedCityError до любого сетевого вызова,
	// если город не замаплен, и *domain.FetchError при сетевых сбоях.
	FetchPage(ctx context.Context, city domain.City, page int) (*domain.RawPage, error)

	// ParsePageItems разбирает все объявления со страницы выдачи,
	// включая загрузку detail-страниц. Возвращает успешно разобранные
	// записи и количество объявлений, которые разобрать не удалось.
	// Никогда не возвращает ошибку: одна битая запись не роняет страницу.
	ParsePageItems(ctx context.Context, raw *domain.RawPage, city domain.City) ([]domain.RentalsListing, int)

	// Close освобождает сетевые ресурсы скрейпера.
	Close()
}
