package contracts

import "testing"

func TestValidateScrapeMetadataAccepts(t *testing.T) {
	payloads := []string{
		`{"mode":"last_x_days","days":7,"specific_date":null,"max_pages":5,"record_count":42,"saved_at":"2025-06-15T09:30:00Z"}`,
		`{"mode":"specific_date","days":0,"specific_date":"2025-06-14","max_pages":1,"record_count":0,"saved_at":"2025-06-15T09:30:00Z"}`,
	}
	for _, p := range payloads {
		if err := ValidateScrapeMetadata([]byte(p)); err != nil {
			t.Errorf("valid payload rejected: %v\npayload: %s", err, p)
		}
	}
}

func TestValidateScrapeMetadataRejects(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{"mode":`},
		{"unknown mode", `{"mode":"hourly","days":7,"specific_date":null,"max_pages":5,"record_count":1,"saved_at":"2025-06-15T09:30:00Z"}`},
		{"missing record_count", `{"mode":"last_x_days","days":7,"specific_date":null,"max_pages":5,"saved_at":"2025-06-15T09:30:00Z"}`},
		{"negative record_count", `{"mode":"last_x_days","days":7,"specific_date":null,"max_pages":5,"record_count":-1,"saved_at":"2025-06-15T09:30:00Z"}`},
		{"zero max_pages", `{"mode":"last_x_days","days":7,"specific_date":null,"max_pages":0,"record_count":1,"saved_at":"2025-06-15T09:30:00Z"}`},
		{"extra field", `{"mode":"last_x_days","days":7,"specific_date":null,"max_pages":5,"record_count":1,"saved_at":"2025-06-15T09:30:00Z","city":"toronto"}`},
	}
	for _, tc := range cases {
		if err := ValidateScrapeMetadata([]byte(tc.payload)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
