package usecase

import "rentals-data-platform/internal/core/domain"

// AggregateResults склеивает результаты постраничной обработки в один батч.
// Порядок объявлений повторяет порядок страниц; результаты страниц,
// которые загрузить не удалось, сюда просто не попадают.
func AggregateResults(results []domain.ScrapingResult) ([]domain.RentalsListing, int) {
	total := 0
	for _, r := range results {
		total += len(r.Listings)
	}

	listings := make([]domain.RentalsListing, 0, total)
	failed := 0
	for _, r := range results {
		listings = append(listings, r.Listings...)
		failed += r.FailedListings
	}

	return listings, failed
}
