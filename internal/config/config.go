package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"travelfuse/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Parser     ParserConfig
	Enrichment EnrichmentConfig
	Export     ExportConfig
	CORS       CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// KeywordConfig overrides the section window of one module.
type KeywordConfig struct {
	Start []string
	End   []string
}

// ParserConfig holds planner retry settings and module selection.
type ParserConfig struct {
	MaxAttempts    int                                 `mapstructure:"max_attempts"`
	BaseDelay      time.Duration                       `mapstructure:"base_delay"`
	StrictMode     bool                                `mapstructure:"strict_mode"`
	EnabledModules []domain.ModuleName                 `mapstructure:"enabled_modules"`
	MaxInputRunes  int                                 `mapstructure:"max_input_runes"`
	Keywords       map[domain.ModuleName]KeywordConfig `mapstructure:"-"`
	Templates      map[string]string                   `mapstructure:"-"`
}

// EnrichmentConfig selects and tunes the enrichment sources.
type EnrichmentConfig struct {
	WorkbookPath string        `mapstructure:"workbook_path"`
	Endpoint     string        `mapstructure:"endpoint"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// ExportConfig holds plan export settings.
type ExportConfig struct {
	DefaultFormat string `mapstructure:"default_format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings. Level is debug, info or silent; Format is
// console (timestamped) or plain (no prefix, for collectors that stamp lines).
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the TRAVELFUSE_
// prefix. When TRAVELFUSE_CONFIG names a file it is read first and the
// environment overrides it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRAVELFUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Parser defaults
	v.SetDefault("parser.max_attempts", 3)
	v.SetDefault("parser.base_delay", "100ms")
	v.SetDefault("parser.strict_mode", false)
	v.SetDefault("parser.enabled_modules", "accommodation,food,transport,tips")
	v.SetDefault("parser.max_input_runes", 200000)
	for _, m := range domain.AllModules {
		v.SetDefault(keywordKey(m, "start"), "")
		v.SetDefault(keywordKey(m, "end"), "")
	}
	for _, period := range []string{"上午", "下午", "晚上"} {
		v.SetDefault("parser.templates."+period, "")
	}

	// Enrichment defaults
	v.SetDefault("enrichment.workbook_path", "")
	v.SetDefault("enrichment.endpoint", "")
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.timeout", "10s")
	v.SetDefault("enrichment.cache_ttl", "1h")

	// Export defaults
	v.SetDefault("export.default_format", "csv")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "TRAVELFUSE_SERVER_PORT",
		"server.read_timeout":      "TRAVELFUSE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "TRAVELFUSE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "TRAVELFUSE_SERVER_ENVIRONMENT",
		"log.level":                "TRAVELFUSE_LOG_LEVEL",
		"log.format":               "TRAVELFUSE_LOG_FORMAT",
		"cors.allowed_origins":     "TRAVELFUSE_CORS_ALLOWED_ORIGINS",
		"parser.max_attempts":      "TRAVELFUSE_PARSER_MAX_ATTEMPTS",
		"parser.base_delay":        "TRAVELFUSE_PARSER_BASE_DELAY",
		"parser.strict_mode":       "TRAVELFUSE_PARSER_STRICT_MODE",
		"parser.enabled_modules":   "TRAVELFUSE_PARSER_ENABLED_MODULES",
		"parser.max_input_runes":   "TRAVELFUSE_PARSER_MAX_INPUT_RUNES",
		"enrichment.workbook_path": "TRAVELFUSE_ENRICHMENT_WORKBOOK_PATH",
		"enrichment.endpoint":      "TRAVELFUSE_ENRICHMENT_ENDPOINT",
		"enrichment.api_key":       "TRAVELFUSE_ENRICHMENT_API_KEY",
		"enrichment.timeout":       "TRAVELFUSE_ENRICHMENT_TIMEOUT",
		"enrichment.cache_ttl":     "TRAVELFUSE_ENRICHMENT_CACHE_TTL",
		"export.default_format":    "TRAVELFUSE_EXPORT_DEFAULT_FORMAT",
	}
	for _, m := range domain.AllModules {
		for _, edge := range []string{"start", "end"} {
			key := keywordKey(m, edge)
			envBindings[key] = "TRAVELFUSE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path := os.Getenv("TRAVELFUSE_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRAVELFUSE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRAVELFUSE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("log.level")),
		Format: strings.ToLower(v.GetString("log.format")),
	}
	switch cfg.Log.Level {
	case "debug", "info", "silent":
	default:
		return nil, fmt.Errorf("log.level must be debug, info or silent, got %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "plain":
	default:
		return nil, fmt.Errorf("log.format must be console or plain, got %q", cfg.Log.Format)
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}

	modules, err := parseModules(v.GetString("parser.enabled_modules"))
	if err != nil {
		return nil, err
	}
	cfg.Parser = ParserConfig{
		MaxAttempts:    v.GetInt("parser.max_attempts"),
		BaseDelay:      v.GetDuration("parser.base_delay"),
		StrictMode:     v.GetBool("parser.strict_mode"),
		EnabledModules: modules,
		MaxInputRunes:  v.GetInt("parser.max_input_runes"),
		Keywords:       make(map[domain.ModuleName]KeywordConfig),
		Templates:      make(map[string]string),
	}
	if cfg.Parser.MaxAttempts < 1 {
		return nil, fmt.Errorf("parser.max_attempts must be at least 1, got %d", cfg.Parser.MaxAttempts)
	}
	for _, m := range domain.AllModules {
		kw := KeywordConfig{
			Start: splitCSV(v.GetString(keywordKey(m, "start"))),
			End:   splitCSV(v.GetString(keywordKey(m, "end"))),
		}
		if len(kw.Start) > 0 || len(kw.End) > 0 {
			cfg.Parser.Keywords[m] = kw
		}
	}
	for period, tpl := range v.GetStringMapString("parser.templates") {
		if tpl != "" {
			cfg.Parser.Templates[period] = tpl
		}
	}

	cfg.Enrichment = EnrichmentConfig{
		WorkbookPath: v.GetString("enrichment.workbook_path"),
		Endpoint:     v.GetString("enrichment.endpoint"),
		APIKey:       v.GetString("enrichment.api_key"),
		Timeout:      v.GetDuration("enrichment.timeout"),
		CacheTTL:     v.GetDuration("enrichment.cache_ttl"),
	}
	cfg.Export = ExportConfig{
		DefaultFormat: v.GetString("export.default_format"),
	}

	return cfg, nil
}

func keywordKey(m domain.ModuleName, edge string) string {
	return fmt.Sprintf("parser.keywords.%s_%s", m, edge)
}

// parseModules validates a comma-separated module list.
func parseModules(s string) ([]domain.ModuleName, error) {
	var modules []domain.ModuleName
	for _, name := range splitCSV(s) {
		if !domain.ValidModuleName(name) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModule, name)
		}
		modules = append(modules, domain.ModuleName(name))
	}
	return modules, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
