package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// values holds the key/value pairs read from the .env file. Real environment
// variables always win over the file so container deployments can override
// without editing it.
var values map[string]string

// GetEnv returns the configured value for key, preferring the process
// environment, then the .env file, then the given default.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val, ok := values[key]; ok && val != "" {
		return val
	}
	return def
}

// SetupEnvFile locates and reads the .env file. The search walks up from the
// binary's working directory so both `go run ./cmd/hangarline` from the root
// and a build started inside cmd/ find the same file. Running without one is
// fine when the environment itself carries the configuration.
func SetupEnvFile() {
	candidates := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	for _, path := range candidates {
		if parsed, err := godotenv.Read(path); err == nil {
			values = parsed
			return
		}
	}

	log.Println("no .env file found, relying on process environment")
}

// IsDev reports whether the app runs in development mode.
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
