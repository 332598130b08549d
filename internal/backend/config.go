package backend

import (
	"fmt"

	"foodstreet/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sourceType := SourceType(appConfig.DataSource)
	if !sourceType.IsValid() {
		return Config{}, fmt.Errorf("invalid record source type in config: %s", appConfig.DataSource)
	}

	return Config{
		Type:         sourceType,
		CSVPath:      appConfig.CSVPath,
		MirrorDBPath: appConfig.MirrorDBPath,
	}, nil
}
