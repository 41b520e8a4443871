package configs

import (
	"strings"
	"testing"
)

func setRequiredVars(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	t.Setenv("MINIO_SECRET_KEY", "minioadmin")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredVars(t)

	cfg, err := LoadConfig("testdata/absent.env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinIO.Bucket != "raw" {
		t.Errorf("bucket: got %q, want raw", cfg.MinIO.Bucket)
	}
	if cfg.Scraper.DownloadDelaySeconds != 2.0 {
		t.Errorf("download delay: got %g, want 2.0", cfg.Scraper.DownloadDelaySeconds)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment: got %q, want development", cfg.Environment)
	}
	if cfg.FluentBit.Enabled {
		t.Error("fluent bit should be disabled by default")
	}
}

func TestLoadConfigRequiresMinIOCredentials(t *testing.T) {
	cases := []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequiredVars(t)
			t.Setenv(missing, "")

			_, err := LoadConfig("testdata/absent.env")
			if err == nil {
				t.Fatalf("expected error when %s is missing", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("error should name the variable, got: %v", err)
			}
		})
	}
}

func TestLoadConfigRejectsNegativeDelay(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("SCRAPER_DOWNLOAD_DELAY", "-1")

	if _, err := LoadConfig("testdata/absent.env"); err == nil {
		t.Fatal("expected error for negative download delay")
	}
}
