package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghighi/quoteboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"QUOTEBOARD_CONFIG",
		"QUOTEBOARD_ADDR",
		"QUOTEBOARD_LOG_LEVEL",
		"QUOTEBOARD_STORAGE",
		"QUOTEBOARD_CSV_PATH",
		"QUOTEBOARD_SHEETS_DOC_ID",
		"QUOTEBOARD_SHEETS_WORKSHEET",
		"QUOTEBOARD_SHEETS_CREDENTIALS_FILE",
		"QUOTEBOARD_SHEETS_CREDENTIALS_JSON",
		"QUOTEBOARD_MAX_HISTORY_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageCSV)
				convey.So(cfg.CSVPath, convey.ShouldEqual, "data/quotes.csv")
				convey.So(cfg.SheetsWorksheet, convey.ShouldEqual, "quotes")
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("QUOTEBOARD_ADDR", ":9090")
			_ = os.Setenv("QUOTEBOARD_STORAGE", "sheets")
			_ = os.Setenv("QUOTEBOARD_SHEETS_DOC_ID", "doc-123")
			_ = os.Setenv("QUOTEBOARD_SHEETS_WORKSHEET", "stash")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Storage, convey.ShouldEqual, config.StorageSheets)
				convey.So(cfg.SheetsDocID, convey.ShouldEqual, "doc-123")
				convey.So(cfg.SheetsWorksheet, convey.ShouldEqual, "stash")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
storage: csv
csv_path: /tmp/quotes.csv
max_history_limit: 50
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("QUOTEBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.CSVPath, convey.ShouldEqual, "/tmp/quotes.csv")
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
csv_path: /tmp/quotes.csv
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("QUOTEBOARD_CONFIG", tmpFile)
			_ = os.Setenv("QUOTEBOARD_ADDR", ":6060") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")          // Overridden by env
				convey.So(cfg.CSVPath, convey.ShouldEqual, "/tmp/quotes.csv") // From file
			})
		})

		convey.Convey("When the sheets backend lacks a document id", func() {
			_ = os.Setenv("QUOTEBOARD_STORAGE", "sheets")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail as invalid config", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the storage selector is unknown", func() {
			_ = os.Setenv("QUOTEBOARD_STORAGE", "mainframe")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail as invalid config", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
