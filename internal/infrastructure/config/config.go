package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PlaceholderAPIKey 未配置API Key时的占位值
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Google   GoogleConfig   `mapstructure:"google"`
	Drive    DriveConfig    `mapstructure:"drive"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Prewarm  PrewarmConfig  `mapstructure:"prewarm"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	QPS  int    `mapstructure:"qps"` // 本服务/api入口每秒请求数限制，0为不限制
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// APIConfigured API Key是否已配置（非空且不是占位值）
func (g GoogleConfig) APIConfigured() bool {
	return g.APIKey != "" && g.APIKey != PlaceholderAPIKey
}

type DriveConfig struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	DownloadBaseURL string        `mapstructure:"download_base_url"`
	ProxyPath       string        `mapstructure:"proxy_path"`
	PageSize        int           `mapstructure:"page_size"`
	ListTimeout     time.Duration `mapstructure:"list_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	ProxyMaxAge     time.Duration `mapstructure:"proxy_max_age"`
}

type SheetsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type PrewarmConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Cron      string   `mapstructure:"cron"`       // cron表达式，如 "*/5 * * * *"
	FolderIDs []string `mapstructure:"folder_ids"` // 需要预热的文件夹ID
}

// LoadConfig 加载配置：.env -> 配置文件 -> 环境变量
func LoadConfig() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 环境变量覆盖，例如 SERVER_PORT、DRIVE_CACHE_TTL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("google.api_key", "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Drive.PageSize <= 0 || config.Drive.PageSize > 1000 {
		config.Drive.PageSize = 1000
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.qps", 0)

	v.SetDefault("google.api_key", PlaceholderAPIKey)

	v.SetDefault("drive.api_base_url", "https://www.googleapis.com/drive/v3")
	v.SetDefault("drive.download_base_url", "https://drive.google.com/uc")
	v.SetDefault("drive.proxy_path", "/api/proxy-image")
	v.SetDefault("drive.page_size", 1000)
	v.SetDefault("drive.list_timeout", 10*time.Second)
	v.SetDefault("drive.download_timeout", 30*time.Second)
	v.SetDefault("drive.cache_ttl", 30*time.Second)
	v.SetDefault("drive.proxy_max_age", time.Hour)

	v.SetDefault("sheets.base_url", "https://docs.google.com/spreadsheets")
	v.SetDefault("sheets.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/relay.log")
	v.SetDefault("log.colorize", false)
	v.SetDefault("log.add_source", false)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.chat_ids", []int64{})

	v.SetDefault("prewarm.enabled", false)
	v.SetDefault("prewarm.cron", "*/5 * * * *")
	v.SetDefault("prewarm.folder_ids", []string{})
}
