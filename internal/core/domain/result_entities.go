package domain

import "time"

// FlowStatus - итоговый статус выполнения flow.
type FlowStatus string

const (
	FlowStatusSuccess         FlowStatus = "success"
	FlowStatusError           FlowStatus = "error"
	FlowStatusCompletedNoData FlowStatus = "completed_no_data"
)

// StorageStatus - статус одной попытки сохранения батча.
type StorageStatus string

const (
	StorageStatusSuccess StorageStatus = "success"
	StorageStatusFailed  StorageStatus = "failed"
	StorageStatusSkipped StorageStatus = "skipped"
)

// RawPage - сырой ответ на запрос одной страницы поиска.
// Тело разбирается site-специфичным скрейпером.
type RawPage struct {
	URL       string
	Body      []byte
	FetchedAt time.Time
}

// ScrapingResult - результат загрузки и разбора одной страницы.
// Создается задачей fetch-and-parse, потребляется агрегатором один раз.
type ScrapingResult struct {
	PageNumber     int
	Listings       []RentalsListing
	FailedListings int
}

// ScrapePartition - координаты партиции bronze-слоя.
type ScrapePartition struct {
	Source string
	City   City
	// Date в формате YYYY-MM-DD, становится частью ключа dt=...
	Date string
}

// ScrapeRunParams - параметры запуска, попадающие в metadata sidecar.
type ScrapeRunParams struct {
	Mode         ScraperMode
	Days         int
	SpecificDate *time.Time
	MaxPages     int
}

// StorageResult - итог попытки сохранения батча в объектное хранилище.
type StorageResult struct {
	Status       StorageStatus
	Path         string
	MetadataPath string
	Count        int
	Reason       string
}

// ScrapeToBronzeResult - итог выполнения scrape-to-bronze flow.
// Содержит достаточно деталей для диагностики без обращения к логам.
type ScrapeToBronzeResult struct {
	Status         FlowStatus
	TotalListings  int
	FailedListings int
	Storage        *StorageResult
	Error          string
}

// BronzeToSilverResult - итог выполнения bronze-to-silver flow.
type BronzeToSilverResult struct {
	Status        FlowStatus
	Source        string
	City          string
	PartitionDate string
	RecordsRead   int
	RecordsLoaded int
	Error         string
}
