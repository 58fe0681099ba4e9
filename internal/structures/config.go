package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Dir      string `yaml:"dir" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type SchedulerConfig struct {
	HonorWeekdays  bool          `yaml:"honorWeekdays"`
	ResyncInterval time.Duration `yaml:"resyncInterval" validate:"required|min:1"`
}

type HistoryConfig struct {
	MaxEntries      int           `yaml:"maxEntries" validate:"required|min:1"`
	DisplayLimit    int           `yaml:"displayLimit"`
	CompactInterval time.Duration `yaml:"compactInterval" validate:"required|min:1"`
	ArchiveDir      string        `yaml:"archiveDir"`
	ArchiveTTL      time.Duration `yaml:"archiveTTL"`
}

type SoundConfig struct {
	Command string `yaml:"command"`
	File    string `yaml:"file"`
}

type NotifierConfig struct {
	Backend      string        `yaml:"backend" validate:"required|in:log,webhook"`
	Permission   string        `yaml:"permission" validate:"required|in:granted,denied,prompt"`
	WebhookURL   string        `yaml:"webhookURL"`
	Timeout      time.Duration `yaml:"timeout"`
	DismissAfter time.Duration `yaml:"dismissAfter"`
	Sound        SoundConfig   `yaml:"sound"`
}

type AnalysisConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Storage   StorageConfig   `yaml:"storage"`
	Logger    LoggerConfig    `yaml:"logger"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	History   HistoryConfig   `yaml:"history"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
