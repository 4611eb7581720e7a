package config

import (
	"os"
	"strings"
)

// AuthTransport selects how session tokens travel between client and server.
const (
	AuthTransportBearer = "bearer"
	AuthTransportCookie = "cookie"
)

type Config struct {
	PostgresURI string
	RedisURI    string
	MongoURI    string

	Port        string
	Environment string // from ENV: production, development, etc.
	FrontendURL string

	// AllowedOrigins feeds CORS; from ALLOWED_ORIGINS, falling back to
	// FRONTEND_URL.
	AllowedOrigins []string

	// AuthTransport is "bearer" (Authorization header) or "cookie"
	// (HttpOnly cookie). Both are always accepted on reads; this selects
	// what login/register emit.
	AuthTransport  string
	AuthCookieName string
	CookieSecure   bool

	// AdminAPIKey guards the sound-asset upload endpoint.
	AdminAPIKey string

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	transport := strings.ToLower(strings.TrimSpace(getEnv("AUTH_TRANSPORT", AuthTransportBearer)))
	if transport != AuthTransportCookie {
		transport = AuthTransportBearer
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:8100"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	// Hybrid mobile clients load from app-local schemes; always allow them.
	for _, origin := range []string{"capacitor://localhost", "ionic://localhost", "http://localhost"} {
		if !containsOrigin(allowedOrigins, origin) {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/focusnow?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/focusnow")),
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:8100"),
		AllowedOrigins:      allowedOrigins,
		AuthTransport:       transport,
		AuthCookieName:      getEnv("AUTH_COOKIE_NAME", "focusnow_token"),
		CookieSecure:        getEnv("COOKIE_SECURE", "") == "true" || env == "production",
		AdminAPIKey:         getEnv("ADMIN_API_KEY", ""),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// UseCookieAuth reports whether login responses should set the HttpOnly
// session cookie instead of relying on the Authorization header.
func (c *Config) UseCookieAuth() bool {
	return c.AuthTransport == AuthTransportCookie
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
