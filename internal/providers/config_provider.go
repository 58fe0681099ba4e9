package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"medreminder/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("scheduler.resyncInterval", 15*time.Minute)
	v.SetDefault("history.maxEntries", 1000)
	v.SetDefault("history.displayLimit", 30)
	v.SetDefault("history.compactInterval", time.Hour)
	v.SetDefault("notifier.backend", "log")
	v.SetDefault("notifier.permission", "prompt")
	v.SetDefault("notifier.timeout", 5*time.Second)
	v.SetDefault("notifier.dismissAfter", 30*time.Second)
	v.SetDefault("analysis.timeout", 2*time.Minute)
	v.SetDefault("cache.ttl", 60)

	v.BindEnv("logger.level", "MEDREMINDER_LOG_LEVEL")
	v.BindEnv("storage.dir", "MEDREMINDER_STORAGE_DIR")
	v.BindEnv("notifier.webhookURL", "MEDREMINDER_WEBHOOK_URL")
	v.BindEnv("notifier.permission", "MEDREMINDER_NOTIFY_PERMISSION")
	v.BindEnv("analysis.baseURL", "MEDREMINDER_ANALYSIS_URL")
	v.BindEnv("cache.enabled", "MEDREMINDER_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "MedReminder"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
