package usecase

import (
	"testing"
	"time"

	"rentals-data-platform/internal/core/domain"
)

func TestAggregateResultsFlattensInPageOrder(t *testing.T) {
	now := time.Now().UTC()
	results := []domain.ScrapingResult{
		{PageNumber: 1, Listings: []domain.RentalsListing{listingForPage("a", now), listingForPage("b", now)}, FailedListings: 1},
		{PageNumber: 2, Listings: []domain.RentalsListing{listingForPage("c", now)}, FailedListings: 2},
		{PageNumber: 3, Listings: nil, FailedListings: 0},
	}

	listings, failed := AggregateResults(results)
	if len(listings) != 3 {
		t.Fatalf("listings: got %d, want 3", len(listings))
	}
	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if listings[i].ListingID != want {
			t.Errorf("listing %d: got %q, want %q", i, listings[i].ListingID, want)
		}
	}
	if failed != 3 {
		t.Errorf("failed: got %d, want 3", failed)
	}
}

func TestAggregateResultsEmptyInput(t *testing.T) {
	listings, failed := AggregateResults(nil)
	if len(listings) != 0 || failed != 0 {
		t.Errorf("got %d listings and %d failed, want 0 and 0", len(listings), failed)
	}
}
