package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"rentals-data-platform/internal"
	"rentals-data-platform/internal/core/domain"
	"rentals-data-platform/internal/core/usecase"
)

func main() {
	var (
		cityFlag     = flag.String("city", "", "город для скрейпинга (toronto, vancouver, london)")
		modeFlag     = flag.String("mode", string(domain.ModeLastXDays), "режим фильтра: last_x_days или specific_date")
		daysFlag     = flag.Int("days", 7, "окно свежести в днях (для last_x_days)")
		dateFlag     = flag.String("specific-date", "", "целевая дата YYYY-MM-DD (для specific_date)")
		maxPagesFlag = flag.Int("max-pages", 10, "сколько страниц выдачи обрабатывать")
	)
	flag.Parse()

	req, err := buildRequest(*cityFlag, *modeFlag, *daysFlag, *dateFlag, *maxPagesFlag)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	application, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Shutdown()

	if err := application.RunScrapeToBronze(req); err != nil {
		application.Shutdown()
		log.Fatalf("Application run failed: %v", err)
	}
}

func buildRequest(city, mode string, days int, specificDate string, maxPages int) (usecase.ScrapeRequest, error) {
	parsedCity, err := domain.ParseCity(city)
	if err != nil {
		return usecase.ScrapeRequest{}, err
	}

	params := domain.ScrapeRunParams{
		Mode:     domain.ScraperMode(mode),
		Days:     days,
		MaxPages: maxPages,
	}
	switch params.Mode {
	case domain.ModeLastXDays:
	case domain.ModeSpecificDate:
		if specificDate != "" {
			target, err := time.ParseInLocation("2006-01-02", specificDate, time.UTC)
			if err != nil {
				return usecase.ScrapeRequest{}, fmt.Errorf("invalid -specific-date %q: %w", specificDate, err)
			}
			params.SpecificDate = &target
		}
	default:
		return usecase.ScrapeRequest{}, fmt.Errorf("unknown -mode %q", mode)
	}

	return usecase.ScrapeRequest{City: parsedCity, Params: params}, nil
}
