package domain

import (
	"errors"
	"testing"
	"time"
)

func validListing() RentalsListing {
	published := time.Now().UTC().Add(-24 * time.Hour)
	rent := 2500.0
	return RentalsListing{
		ListingID:   "1712345678",
		URL:         "https://www.kijiji.ca/v-apartments-condos/city-of-toronto/1712345678",
		Website:     "kijiji",
		City:        CityToronto,
		Title:       "Bright 2BR near High Park",
		PublishedAt: &published,
		Rent:        &rent,
	}
}

func TestNewRentalsListingSetsScrapedAt(t *testing.T) {
	got, err := NewRentalsListing(validListing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ScrapedAt.IsZero() {
		t.Error("ScrapedAt should be set by the constructor")
	}
}

func TestValidateRejections(t *testing.T) {
	negative := -1.0
	negativeRooms := -2
	hugeScore := 11.0
	future := time.Now().UTC().Add(48 * time.Hour)

	cases := []struct {
		name      string
		mutate    func(l *RentalsListing)
		wantField string
	}{
		{"empty listing id", func(l *RentalsListing) { l.ListingID = "" }, "listing_id"},
		{"unknown city", func(l *RentalsListing) { l.City = "winnipeg" }, "city"},
		{"relative url", func(l *RentalsListing) { l.URL = "/v-apartments/123" }, "url"},
		{"non-http scheme", func(l *RentalsListing) { l.URL = "ftp://kijiji.ca/1" }, "url"},
		{"future published_at", func(l *RentalsListing) { l.PublishedAt = &future }, "published_at"},
		{"negative rent", func(l *RentalsListing) { l.Rent = &negative }, "rent"},
		{"negative bedrooms", func(l *RentalsListing) { l.Bedrooms = &negativeRooms }, "bedrooms"},
		{"negative size", func(l *RentalsListing) { l.SizeSqft = &negative }, "size_sqft"},
		{"walk score above range", func(l *RentalsListing) { l.WalkScore = &hugeScore }, "walk_score"},
	}
	for _, tc := range cases {
		l := validListing()
		tc.mutate(&l)
		_, err := NewRentalsListing(l)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: expected *ValidationError, got %T", tc.name, err)
			continue
		}
		if vErr.Field != tc.wantField {
			t.Errorf("%s: field got %q, want %q", tc.name, vErr.Field, tc.wantField)
		}
	}
}

func TestValidateAllowsNilOptionals(t *testing.T) {
	l := validListing()
	l.PublishedAt = nil
	l.Rent = nil
	if _, err := NewRentalsListing(l); err != nil {
		t.Fatalf("nil optional fields should be valid: %v", err)
	}
}

func TestParseCity(t *testing.T) {
	if _, err := ParseCity("vancouver"); err != nil {
		t.Errorf("vancouver should parse: %v", err)
	}
	if _, err := ParseCity("Toronto"); err == nil {
		t.Error("city matching is case sensitive, Toronto should fail")
	}
}
