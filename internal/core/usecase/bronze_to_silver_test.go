package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rentals-data-platform/internal/core/domain"
)

func torontoPartition() domain.ScrapePartition {
	return domain.ScrapePartition{Source: "kijiji", City: domain.CityToronto, Date: "2025-06-15"}
}

func TestBronzeToSilverHappyPath(t *testing.T) {
	now := time.Now().UTC()
	reader := &fakeBronzeReader{listings: []domain.RentalsListing{
		listingForPage("100", now), listingForPage("101", now),
	}}
	repo := &fakeSilverRepo{}

	result := NewBronzeToSilverUseCase(reader, repo).Execute(context.Background(), torontoPartition())

	if result.Status != domain.FlowStatusSuccess {
		t.Fatalf("status: got %s, want %s (error: %s)", result.Status, domain.FlowStatusSuccess, result.Error)
	}
	if result.RecordsRead != 2 || result.RecordsLoaded != 2 {
		t.Errorf("records: read %d loaded %d, want 2 and 2", result.RecordsRead, result.RecordsLoaded)
	}
	if len(repo.saved) != 2 {
		t.Errorf("repo saved %d listings, want 2", len(repo.saved))
	}
}

func TestBronzeToSilverSkipsIncompletePartition(t *testing.T) {
	reader := &fakeBronzeReader{err: domain.ErrPartitionIncomplete}
	repo := &fakeSilverRepo{}

	result := NewBronzeToSilverUseCase(reader, repo).Execute(context.Background(), torontoPartition())

	if result.Status != domain.FlowStatusCompletedNoData {
		t.Fatalf("status: got %s, want %s", result.Status, domain.FlowStatusCompletedNoData)
	}
	if len(repo.saved) != 0 {
		t.Error("incomplete partition must not reach the repository")
	}
}

func TestBronzeToSilverEmptyPartition(t *testing.T) {
	reader := &fakeBronzeReader{err: domain.ErrPartitionEmpty}
	repo := &fakeSilverRepo{}

	result := NewBronzeToSilverUseCase(reader, repo).Execute(context.Background(), torontoPartition())

	if result.Status != domain.FlowStatusCompletedNoData {
		t.Fatalf("status: got %s, want %s", result.Status, domain.FlowStatusCompletedNoData)
	}
}

func TestBronzeToSilverRepositoryFailure(t *testing.T) {
	reader := &fakeBronzeReader{listings: []domain.RentalsListing{listingForPage("100", time.Now().UTC())}}
	repo := &fakeSilverRepo{err: fmt.Errorf("deadlock detected")}

	result := NewBronzeToSilverUseCase(reader, repo).Execute(context.Background(), torontoPartition())

	if result.Status != domain.FlowStatusError {
		t.Fatalf("status: got %s, want %s", result.Status, domain.FlowStatusError)
	}
	if result.Error == "" {
		t.Error("result.Error should carry the repository failure")
	}
}
