package usecase

import (
	"context"
	"fmt"
	"time"

	"rentals-data-platform/internal/core/domain"
)

// fakeScraper реализует port.SiteScraperPort без сети.
type fakeScraper struct {
	pages       map[int][]domain.RentalsListing
	failed      map[int]int
	fetchFails  map[int]int // сколько первых FetchPage по странице падают
	fetchCalls  map[int]int
	parseCalls  int
	closed      bool
	unsupported bool
}

func newFakeScraper() *fakeScraper {
	return &fakeScraper{
		pages:      map[int][]domain.RentalsListing{},
		failed:     map[int]int{},
		fetchFails: map[int]int{},
		fetchCalls: map[int]int{},
	}
}

func (s *fakeScraper) Website() string { return "kijiji" }
func (s *fakeScraper) BaseURL() string { return "https://www.kijiji.ca/b-apartments-condos" }

func (s *fakeScraper) SupportedCities() map[domain.City]string {
	if s.unsupported {
		return map[domain.City]string{}
	}
	return map[domain.City]string{domain.CityToronto: "city-of-toronto/c37l1700273"}
}

func (s *fakeScraper) FetchPage(ctx context.Context, city domain.City, page int) (*domain.RawPage, error) {
	s.fetchCalls[page]++
	if s.fetchCalls[page] <= s.fetchFails[page] {
		return nil, &domain.FetchError{URL: fmt.Sprintf("page-%d", page), StatusCode: 500}
	}
	return &domain.RawPage{URL: fmt.Sprintf("page-%d", page), Body: []byte("<html/>"), FetchedAt: time.Now().UTC()}, nil
}

func (s *fakeScraper) ParsePageItems(ctx context.Context, raw *domain.RawPage, city domain.City) ([]domain.RentalsListing, int) {
	s.parseCalls++
	for page := range s.pages {
		if raw.URL == fmt.Sprintf("page-%d", page) {
			return s.pages[page], s.failed[page]
		}
	}
	return nil, 0
}

func (s *fakeScraper) Close() { s.closed = true }

// fakeBronzeWriter реализует port.BronzeWriterPort в памяти.
type fakeBronzeWriter struct {
	writes     int
	gotBatch   []domain.RentalsListing
	gotPart    domain.ScrapePartition
	gotParams  domain.ScrapeRunParams
	failWrites bool
}

func (w *fakeBronzeWriter) Write(
	ctx context.Context,
	listings []domain.RentalsListing,
	partition domain.ScrapePartition,
	params domain.ScrapeRunParams,
) (*domain.StorageResult, error) {
	w.writes++
	w.gotBatch = listings
	w.gotPart = partition
	w.gotParams = params
	if w.failWrites {
		return &domain.StorageResult{Status: domain.StorageStatusFailed}, &domain.StorageError{Path: "bronze", Err: fmt.Errorf("connection refused")}
	}
	return &domain.StorageResult{
		Status: domain.StorageStatusSuccess,
		Path:   "listings/source=kijiji/city=toronto/dt=2025-06-15/listings_20250615.parquet",
		Count:  len(listings),
	}, nil
}

// fakeBronzeReader реализует port.BronzeReaderPort.
type fakeBronzeReader struct {
	listings []domain.RentalsListing
	err      error
}

func (r *fakeBronzeReader) ReadPartition(ctx context.Context, partition domain.ScrapePartition) ([]domain.RentalsListing, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.listings, nil
}

// fakeSilverRepo реализует port.SilverRepositoryPort.
type fakeSilverRepo struct {
	saved  []domain.RentalsListing
	err    error
	closed bool
}

func (r *fakeSilverRepo) SaveBatch(ctx context.Context, listings []domain.RentalsListing) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = append(r.saved, listings...)
	return len(listings), nil
}

func (r *fakeSilverRepo) Close() { r.closed = true }

func listingForPage(id string, publishedAt time.Time) domain.RentalsListing {
	return domain.RentalsListing{
		ListingID:   id,
		URL:         "https://www.kijiji.ca/v-apartments-condos/city-of-toronto/" + id,
		Website:     "kijiji",
		City:        domain.CityToronto,
		PublishedAt: &publishedAt,
		ScrapedAt:   time.Now().UTC(),
	}
}
