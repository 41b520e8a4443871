package domain

import "time"

// ScraperMode - режим фильтрации по дате публикации.
type ScraperMode string

const (
	ModeLastXDays    ScraperMode = "last_x_days"
	ModeSpecificDate ScraperMode = "specific_date"
)

// DateFilter - общий для всех скрейперов алгоритм фильтрации по свежести.
// Реализован один раз и подключается к parse_page через композицию,
// чтобы ни одна site-реализация не изобретала свою семантику.
type DateFilter struct {
	mode         ScraperMode
	days         int
	specificDate *time.Time

	// now подменяется в тестах
	now func() time.Time
}

// NewLastXDaysFilter - фильтр "за последние N дней".
func NewLastXDaysFilter(days int) *DateFilter {
	return &DateFilter{mode: ModeLastXDays, days: days, now: func() time.Time { return time.Now().UTC() }}
}

// NewSpecificDateFilter - фильтр "за конкретный день" (UTC).
// Нулевой указатель означает "фильтр не настроен": пропускаем все.
func NewSpecificDateFilter(target *time.Time) *DateFilter {
	return &DateFilter{mode: ModeSpecificDate, specificDate: target, now: func() time.Time { return time.Now().UTC() }}
}

// Mode возвращает режим фильтра.
func (f *DateFilter) Mode() ScraperMode { return f.mode }

// Days возвращает окно для режима last_x_days.
func (f *DateFilter) Days() int { return f.days }

// SpecificDate возвращает целевой день для режима specific_date.
func (f *DateFilter) SpecificDate() *time.Time { return f.specificDate }

// Passes - предикат свежести для одного объявления.
func (f *DateFilter) Passes(listing *RentalsListing) bool {
	switch f.mode {
	case ModeLastXDays:
		// Объявление без даты публикации консервативно исключается.
		if listing.PublishedAt == nil {
			return false
		}
		cutoff := f.now().AddDate(0, 0, -f.days)
		return !listing.PublishedAt.Before(cutoff)
	case ModeSpecificDate:
		if f.specificDate == nil {
			return true
		}
		if listing.PublishedAt == nil {
			return false
		}
		day := f.specificDate.UTC()
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		at := listing.PublishedAt.UTC()
		return !at.Before(start) && at.Before(end)
	default:
		return true
	}
}

// Apply прогоняет предикат по всем объявлениям, сохраняя исходный порядок.
// Возвращает выживших и количество отброшенных (логирует вызывающая сторона).
func (f *DateFilter) Apply(listings []RentalsListing) (kept []RentalsListing, dropped int) {
	kept = make([]RentalsListing, 0, len(listings))
	for i := range listings {
		if f.Passes(&listings[i]) {
			kept = append(kept, listings[i])
		} else {
			dropped++
		}
	}
	return kept, dropped
}
