// Command blogsphere runs the BlogSphere web frontend. All site branding
// and wiring comes from environment variables; a .env file in the working
// directory is loaded when present.
package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	blogsphere "github.com/firatdemir47/blogsphere-web"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg := blogsphere.SiteConfig{
		Name:          blogsphere.EnvOr("SITE_NAME", "BlogSphere"),
		URL:           blogsphere.EnvOr("SITE_URL", "http://localhost:8080"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Addr:          blogsphere.EnvOr("ADDR", ":8080"),
		APIBaseURL:    blogsphere.EnvOr("API_BASE_URL", "http://localhost:3000/api"),
		SessionSecret: blogsphere.MustEnv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		DataPath:      blogsphere.EnvOr("DATA_PATH", "data/local.db"),
	}
	if ttl := os.Getenv("CATALOG_TTL_SECONDS"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.CatalogTTL = time.Duration(n) * time.Second
		}
	}
	if maxFiles := os.Getenv("MAX_UPLOAD_FILES"); maxFiles != "" {
		if n, err := strconv.Atoi(maxFiles); err == nil && n > 0 {
			cfg.MaxUploadFiles = n
		}
	}

	app := blogsphere.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
