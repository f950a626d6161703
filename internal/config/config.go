package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret, token lifetime and database
// path are passed into the auth and persistence components at construction
// instead of living as process-wide globals.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBPath       string // path to the sqlite database file
	UploadDir    string // directory where product images are stored
	JWTSecret    string // secret used to sign access tokens
	AccessTTLSec int    // access token time-to-live in seconds
	BcryptCost   int    // bcrypt cost for password hashing
	DefaultMaker int64  // fallback maker user id for products created without one
	DefaultImage string // image filename used when a product is created without one
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when it exists. Only the JWT secret is
// strictly required; everything else falls back to the reference defaults.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8080"),
		DBPath:       envStr("DB_PATH", "database.db"),
		UploadDir:    envStr("UPLOAD_DIR", "static/uploads"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLSec: envInt("ACCESS_TOKEN_TTL_SEC", 1800),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		DefaultMaker: int64(envInt("DEFAULT_MAKER_ID", 1)),
		DefaultImage: envStr("DEFAULT_PRODUCT_IMAGE", "default_product.png"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
