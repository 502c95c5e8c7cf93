package backend

import (
	"errors"
	"fmt"

	"keuangan/internal/config"
)

// FromAppConfig selects the primary backend described by the application
// config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	cfg := sheetsConfig(appConfig)
	cfg.Type = backendType
	cfg.CSVPath = appConfig.CSVPath
	cfg.SQLiteDBPath = appConfig.SQLiteDBPath
	return cfg, nil
}

// MirrorFromAppConfig describes the Google Sheets mirror target. It fails
// when no spreadsheet is configured.
func MirrorFromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	if appConfig.GoogleSpreadsheetID == "" {
		return Config{}, errors.New("no spreadsheet configured for mirror")
	}
	cfg := sheetsConfig(appConfig)
	cfg.Type = SheetsBackend
	return cfg, nil
}

func sheetsConfig(appConfig *config.Config) Config {
	return Config{
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case CSVBackend:
		if c.CSVPath == "" {
			return errors.New("CSV path is required for csv backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return errors.New("SQLite database path is required for sqlite backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return errors.New("Google Spreadsheet ID is required for sheets backend")
		}
	case MemoryBackend:
	}
	return nil
}

func GetBackendTypes() []BackendType {
	return []BackendType{CSVBackend, SQLiteBackend, SheetsBackend, MemoryBackend}
}
