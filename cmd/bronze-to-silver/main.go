package main

import (
	"flag"
	"log"
	"time"

	"rentals-data-platform/internal"
	"rentals-data-platform/internal/constants"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/pkg/dates"
)

func main() {
	var (
		sourceFlag = flag.String("source", constants.KijijiWebsiteName, "источник данных партиции")
		cityFlag   = flag.String("city", "", "город партиции (toronto, vancouver, london)")
		dateFlag   = flag.String("date", dates.FormatDate(time.Now().UTC()), "дата партиции YYYY-MM-DD")
	)
	flag.Parse()

	city, err := domain.ParseCity(*cityFlag)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	if _, err := time.ParseInLocation("2006-01-02", *dateFlag, time.UTC); err != nil {
		log.Fatalf("Invalid -date %q: %v", *dateFlag, err)
	}

	application, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Shutdown()

	partition := domain.ScrapePartition{
		Source: *sourceFlag,
		City:   city,
		Date:   *dateFlag,
	}
	if err := application.RunBronzeToSilver(partition); err != nil {
		application.Shutdown()
		log.Fatalf("Application run failed: %v", err)
	}
}
