package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/rfani/stegolock/docs"
	"github.com/rfani/stegolock/handlers"
	"github.com/rfani/stegolock/models"
	"github.com/rfani/stegolock/service"
	"github.com/rfani/stegolock/validate"
)

// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Set gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	r := gin.New()

	// The server's upload ceiling is the one real domain input here: it
	// must admit anything validate.CarrierSizeCeiling would later accept,
	// so it comes from the same platform-aware policy the rest of the
	// module checks against, not a separately maintained constant.
	platform := models.PlatformDesktop
	if strings.EqualFold(os.Getenv("PLATFORM"), "mobile") {
		platform = models.PlatformMobile
	}

	// Configure best-practice middleware
	setupMiddleware(r, platform)

	// Initialize services with dependency injection
	cryptographyService := service.NewCryptographyService()
	audioService := service.NewAudioService()
	steganographyService := service.NewStegoService(cryptographyService, audioService)

	// Initialize handlers with injected services
	h := handlers.NewHandlers(steganographyService)

	// Set up Swagger documentation
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register API routes with dependency-injected handlers
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.HealthHandler)
		v1.POST("/capacity", h.CapacityHandler)
		v1.POST("/encode", h.EncodeHandler)
		v1.POST("/decode", h.DecodeHandler)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server with best practices
	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// setupMiddleware configures all necessary middleware following best practices
func setupMiddleware(r *gin.Engine, platform models.Platform) {
	// Recovery middleware recovers from any panics and writes a 500
	r.Use(gin.Recovery())

	// Logger middleware with custom format
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	// CORS middleware with secure configuration. cors.New rejects a config
	// with neither AllowAllOrigins nor a non-empty AllowOrigins list, so
	// with no CORS_ORIGINS configured the middleware is simply omitted:
	// gin's default response carries no Access-Control-Allow-Origin header,
	// which browsers already treat as same-origin-only.
	if origins := getAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodOptions,
			},
			AllowHeaders: []string{
				"Origin",
				"Content-Type",
				"Content-Length",
				"Accept-Encoding",
				"X-CSRF-Token",
				"Authorization",
				"X-API-Key",
				"X-Trace-Id",
			},
			ExposeHeaders: []string{
				"Content-Disposition",
				"X-PSNR-Value",
				"X-Warnings",
				"X-Payload-Kind",
				"X-Processing-Time",
			},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers middleware
	r.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Request ID middleware for tracing
	r.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Trace-Id")
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Header("X-Trace-Id", requestID)
		c.Set("trace_id", requestID)
		c.Next()
	})

	// File size limit middleware for multipart requests, derived from the
	// same platform-aware ceiling validate.CarrierSizeCeiling enforces
	// later, so a request oversized for its platform is rejected at the
	// transport boundary instead of after a full carrier decode.
	maxUpload := int64(validate.MaxUploadBytes(platform))
	r.Use(func(c *gin.Context) {
		if c.ContentType() == "multipart/form-data" {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload)
		}
		c.Next()
	})
}

// getAllowedOrigins returns allowed CORS origins based on environment. This
// service has no bundled frontend (the UI is out of scope per spec.md), so
// unlike a backend that ships its own dev server there's no first-party
// origin to default to: cross-origin access stays closed until an operator
// opts a caller in explicitly via CORS_ORIGINS.
func getAllowedOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return nil
	}
	return strings.Split(origins, ",")
}

// generateRequestID generates a trace ID. Random bytes rather than a
// timestamp avoid collisions between requests started in the same
// nanosecond under load; crypto/rand is the same source crypto/envelope.go
// uses for salts and IVs. Falls back to the timestamp form on the
// essentially unreachable case that the system CSPRNG errors.
func generateRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(b[:])
}
