package bronzestorage

import "testing"

func TestToBronzeRowDerivesGeohash(t *testing.T) {
	l := sampleBatch(1)[0]
	row := toBronzeRow(&l)
	if row.Geohash == "" {
		t.Error("geohash should be derived when both coordinates are present")
	}

	l.Longitude = nil
	row = toBronzeRow(&l)
	if row.Geohash != "" {
		t.Errorf("geohash should be empty without coordinates, got %q", row.Geohash)
	}
}

func TestToBronzeRowTimestampsAreMicros(t *testing.T) {
	l := sampleBatch(1)[0]
	row := toBronzeRow(&l)
	if row.PublishedAt == nil {
		t.Fatal("published_at should be set")
	}
	if *row.PublishedAt != l.PublishedAt.UnixMicro() {
		t.Errorf("published_at: got %d, want %d", *row.PublishedAt, l.PublishedAt.UnixMicro())
	}
	if row.ScrapedAt != l.ScrapedAt.UnixMicro() {
		t.Errorf("scraped_at: got %d, want %d", row.ScrapedAt, l.ScrapedAt.UnixMicro())
	}
}
