package dates

import "time"

// FormatDate форматирует дату как YYYY-MM-DD.
// Используется для партиций вида dt=2026-02-25.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatestamp форматирует дату компактно, YYYYMMDD.
// Используется в именах файлов вида listings_20260225.parquet.
func FormatDatestamp(t time.Time) string {
	return t.Format("20060102")
}

// FormatTimestamp форматирует момент компактно, YYYYMMDD_HHMMSS.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
