package domain

import (
	"errors"
	"fmt"
)

// UnsupportedCityError возвращается до любого сетевого вызова,
// если у скрейпера нет маппинга для запрошенного города.
type UnsupportedCityError struct {
	Website string
	City    City
}

func (e *UnsupportedCityError) Error() string {
	return fmt.Sprintf("city %q is not supported by %s scraper", e.City, e.Website)
}

// FetchError - ошибка HTTP/сети при загрузке страницы поиска или деталей.
// Ретраится на уровне страницы.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError - нарушение инварианта при конструировании RentalsListing.
// На границе парсинга конвертируется в nil + счетчик failed, батч не падает.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// StorageError - любая ошибка записи в объектное хранилище.
// Фатальна для flow: молчаливое проглатывание неотличимо от потери данных.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage write %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Структурные ошибки разбора detail-страницы. Никогда не пересекают
// границу компонента - парсер понижает их до nil + warn в логе.
var (
	ErrNoStructuredData = errors.New("no structured-data block found in page")
	ErrNoListingID      = errors.New("no listing id found in structured data")
	ErrNoListingRecord  = errors.New("no listing record found in state blob")
)

// Состояния bronze-партиции при чтении.
var (
	// ErrPartitionIncomplete: данные без metadata sidecar-а - след
	// упавшей записи; партиция не загружается дальше по конвейеру.
	ErrPartitionIncomplete = errors.New("partition has no metadata sidecar")

	// ErrPartitionEmpty: под префиксом партиции нет ни одного объекта.
	ErrPartitionEmpty = errors.New("partition has no objects")
)
