package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ProjectID                    string
	Port                         string
	AllowedOrigins               []string
	StorageBucket                string
	SignedURLServiceAccountEmail string

	// Tenant resolution: leftmost host labels that never identify a club,
	// and hosting suffixes on which subdomain matching is disabled.
	ReservedSubdomains  []string
	GenericHostSuffixes []string

	StripeSecretKey     string
	StripeWebhookSecret string

	// Aggregation knobs (see stats package).
	ActivityWindow  int
	LowBalance      int64
	CriticalBalance int64
}

func Load() Config {
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	port := getenv("PORT", "8080")
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	storageBucket := getenv("FIREBASE_STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	return Config{
		ProjectID:                    projectID,
		Port:                         port,
		AllowedOrigins:               splitList(origins),
		StorageBucket:                storageBucket,
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),
		ReservedSubdomains:           splitList(getenv("RESERVED_SUBDOMAINS", "www,app,admin,api")),
		GenericHostSuffixes:          splitList(getenv("GENERIC_HOST_SUFFIXES", ".github.io,.pages.dev,.netlify.app")),
		StripeSecretKey:              getenv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:          getenv("STRIPE_WEBHOOK_SECRET", ""),
		ActivityWindow:               getenvInt("ACTIVITY_WINDOW", 10),
		LowBalance:                   int64(getenvInt("LOW_BALANCE_THRESHOLD", 1000)),
		CriticalBalance:              int64(getenvInt("CRITICAL_BALANCE_THRESHOLD", 500)),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
