package app

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool

	// Cookie is the security cookie override (--cookie flag). When empty
	// the credential sources are searched in order at command time.
	Cookie string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (bound by cobra after this runs)
//  2. Environment variables (MERCHANT_*, plus ROBLOSECURITY)
//  3. .env files in the working directory
//  4. Defaults
func LoadConfig() (*Config, error) {
	// .env first, so Viper's env binding sees its values.
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("MERCHANT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The cookie env var is a platform-wide convention, not MERCHANT_*.
	_ = v.BindEnv("cookie", "ROBLOSECURITY")

	return &Config{
		Verbose:   v.GetBool("verbose"),
		Quiet:     v.GetBool("quiet"),
		Cookie:    v.GetString("cookie"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// loadEnvFiles loads .env files without overriding the real environment.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		_ = godotenv.Load(file)
	}
}
