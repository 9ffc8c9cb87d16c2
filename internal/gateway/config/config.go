package config

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	AllowedOrigin  string
	GeminiAPIKey   string
	GeminiModel    string
	CodebaseRoot   string
	ScanPolicyFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":3001", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:           *port,
		Env:            env,
		AllowedOrigin:  firstNonEmpty(strings.TrimSpace(os.Getenv("ALLOWED_ORIGIN")), "http://localhost:5173"),
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.5-flash"),
		CodebaseRoot:   firstNonEmpty(strings.TrimSpace(os.Getenv("CODEBASE_ROOT")), "../codebase"),
		ScanPolicyFile: strings.TrimSpace(os.Getenv("SCAN_POLICY_FILE")),
	}, nil
}

// Production reports whether internal error detail should be suppressed in
// responses.
func (c *Config) Production() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
