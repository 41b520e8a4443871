package usecase

import (
	"context"
	"testing"
	"time"

	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/pkg/retry"
)

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, Delay: time.Millisecond}
}

func TestFetchAndParsePageHappyPath(t *testing.T) {
	scraper := newFakeScraper()
	scraper.pages[1] = []domain.RentalsListing{
		listingForPage("100", time.Now().UTC().Add(-time.Hour)),
		listingForPage("101", time.Now().UTC().Add(-2*time.Hour)),
	}
	scraper.failed[1] = 1

	uc := NewFetchAndParsePageUseCase(scraper, domain.NewLastXDaysFilter(7))
	uc.retryCfg = fastRetry()

	result, err := uc.Execute(context.Background(), domain.CityToronto, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PageNumber != 1 {
		t.Errorf("PageNumber: got %d, want 1", result.PageNumber)
	}
	if len(result.Listings) != 2 {
		t.Errorf("Listings: got %d, want 2", len(result.Listings))
	}
	if result.FailedListings != 1 {
		t.Errorf("FailedListings: got %d, want 1", result.FailedListings)
	}
}

func TestFetchAndParsePageRetriesTransientFailure(t *testing.T) {
	scraper := newFakeScraper()
	scraper.fetchFails[1] = 2 // первые две попытки падают, третья проходит
	scraper.pages[1] = []domain.RentalsListing{listingForPage("100", time.Now().UTC())}

	uc := NewFetchAndParsePageUseCase(scraper, domain.NewLastXDaysFilter(7))
	uc.retryCfg = fastRetry()

	result, err := uc.Execute(context.Background(), domain.CityToronto, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scraper.fetchCalls[1] != 3 {
		t.Errorf("fetch calls: got %d, want 3", scraper.fetchCalls[1])
	}
	if len(result.Listings) != 1 {
		t.Errorf("Listings: got %d, want 1", len(result.Listings))
	}
}

func TestFetchAndParsePageGivesUpAfterAllAttempts(t *testing.T) {
	scraper := newFakeScraper()
	scraper.fetchFails[1] = 10

	uc := NewFetchAndParsePageUseCase(scraper, domain.NewLastXDaysFilter(7))
	uc.retryCfg = fastRetry()

	_, err := uc.Execute(context.Background(), domain.CityToronto, 1)
	if err == nil {
		t.Fatal("expected error after exhausting all attempts")
	}
	if scraper.fetchCalls[1] != 3 {
		t.Errorf("fetch calls: got %d, want 3", scraper.fetchCalls[1])
	}
	if scraper.parseCalls != 0 {
		t.Errorf("parse should not run after a failed fetch, got %d calls", scraper.parseCalls)
	}
}

func TestFetchAndParsePageAppliesDateFilter(t *testing.T) {
	scraper := newFakeScraper()
	scraper.pages[1] = []domain.RentalsListing{
		listingForPage("fresh", time.Now().UTC().Add(-time.Hour)),
		listingForPage("stale", time.Now().UTC().AddDate(0, 0, -30)),
	}

	uc := NewFetchAndParsePageUseCase(scraper, domain.NewLastXDaysFilter(7))
	uc.retryCfg = fastRetry()

	result, err := uc.Execute(context.Background(), domain.CityToronto, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Listings) != 1 {
		t.Fatalf("Listings: got %d, want 1", len(result.Listings))
	}
	if result.Listings[0].ListingID != "fresh" {
		t.Errorf("surviving listing: got %q, want %q", result.Listings[0].ListingID, "fresh")
	}
}
