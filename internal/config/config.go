package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default locations, relative to the working directory the report is run from.
const (
	DefaultInputPath  = "../../data/law_school_clean.csv"
	DefaultOutputPath = "../visualizations/bias_visualization.png"
	DefaultReportPath = "../results/bias_report.md"
	DefaultDPI        = 300
)

// Config holds all run configuration.
type Config struct {
	InputPath  string `validate:"required"`
	OutputPath string `validate:"required"`
	// ReportPath is where the Markdown summary goes. Empty disables it.
	ReportPath string
	DPI        int    `validate:"gte=36,lte=1200"`
	LogLevel   string `validate:"oneof=trace debug info warn error fatal panic"`
	LogFormat  string `validate:"oneof=pretty json"`
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		InputPath:  getEnv("BIAS_INPUT", DefaultInputPath),
		OutputPath: getEnv("BIAS_OUTPUT", DefaultOutputPath),
		ReportPath: getEnv("BIAS_REPORT", DefaultReportPath),
		DPI:        getEnvInt("BIAS_DPI", DefaultDPI),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
	}
}

var validate = govalidator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
