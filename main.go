package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Fabihno/automated-quotation/handlers"
	"github.com/Fabihno/automated-quotation/models"
	"github.com/Fabihno/automated-quotation/services"
	"github.com/Fabihno/automated-quotation/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS", "HEAD"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := models.Config{
		QuotationsDir: envOr("QUOTATIONS_DIR", "quotations"),
		TemplateDir:   envOr("TEMPLATE_DIR", "files"),
	}

	store := storage.NewFSStore(cfg.QuotationsDir)
	gen := services.NewNumberGenerator(store)
	pdfSvc := services.NewPDFService(cfg.TemplateDir)

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))
	r.LoadHTMLGlob("templates/*")

	r.GET("/", handlers.ShowQuotations(store))
	r.POST("/", handlers.SubmitQuotation(store, gen, pdfSvc))
	r.GET("/download", handlers.DownloadQuotation(store))
	r.GET("/export", handlers.ExportQuotations(store))

	// Hourly sweep of temp artifacts left behind by interrupted writes
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	if _, err := c.AddFunc("@hourly", func() {
		if removed := store.SweepTemp(time.Hour); removed > 0 {
			log.Printf("Removed %d stale temp artifacts", removed)
		}
	}); err != nil {
		log.Printf("Failed to schedule temp sweep: %v", err)
	}
	c.Start()

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	// Validate port is numeric
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
