package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rfani/stegolock/models"
	"github.com/rfani/stegolock/service"
	"github.com/rfani/stegolock/validate"
)

// Handlers struct holds service dependencies.
type Handlers struct {
	steganographyService service.SteganographyService
}

// NewHandlers creates a new handlers instance with service dependencies.
func NewHandlers(stegoService service.SteganographyService) *Handlers {
	return &Handlers{steganographyService: stegoService}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// CapacityResponse represents the capacity calculation response.
type CapacityResponse struct {
	Capacities       models.CapacityResult `json:"capacities"`
	FileInfo         FileInfo              `json:"file_info"`
	ProcessingTimeMs int                   `json:"processing_time_ms"`
}

// FileInfo describes the uploaded carrier.
type FileInfo struct {
	Filename  string             `json:"filename"`
	SizeBytes int                `json:"size_bytes"`
	Kind      models.CarrierKind `json:"kind"`
}

// EncodeResponseHeaders are the informational headers attached to a
// successful encode response alongside the raw stego bytes.
const (
	headerPSNR     = "X-PSNR-Value"
	headerWarnings = "X-Warnings"
)

func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return id
}

// HealthHandler handles the health check endpoint.
// @Summary Health Check
// @Description Returns the health status of the API service
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Router /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: "1.0.0"})
}

// CapacityHandler handles the capacity calculation request.
// @Summary Calculate Carrier Embedding Capacity
// @Description Calculates the maximum size of an encrypted payload (in bytes) that can be embedded into an uploaded PNG, BMP, or WAV carrier, for LSB depths 1-4.
// @Tags Steganography
// @Accept multipart/form-data
// @Produce json
// @Param carrier formData file true "Carrier file (PNG, BMP, or WAV)"
// @Success 200 {object} CapacityResponse "Successfully calculated embedding capacity"
// @Failure 400 {object} models.ErrorResponse "Bad Request"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /capacity [post]
func (h *Handlers) CapacityHandler(c *gin.Context) {
	startTime := time.Now()
	reqID := requestID(c)
	log.Printf("[INFO] [%s] CapacityHandler: starting request from %s", reqID, c.ClientIP())

	fileHeader, err := c.FormFile("carrier")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "Carrier file not provided")
		return
	}

	carrierData, err := readFormFile(fileHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read carrier file")
		return
	}

	kind, err := validate.SniffCarrierKind(carrierData)
	if err != nil {
		sendModelError(c, err)
		return
	}

	capacities, err := h.steganographyService.CalculateCapacity(carrierData, kind)
	if err != nil {
		sendModelError(c, err)
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.JSON(http.StatusOK, CapacityResponse{
		Capacities: *capacities,
		FileInfo: FileInfo{
			Filename:  fileHeader.Filename,
			SizeBytes: int(fileHeader.Size),
			Kind:      kind,
		},
		ProcessingTimeMs: processingTime,
	})
}

// EncodeHandler handles the embed request.
// @Summary Embed an Encrypted Payload in a Carrier
// @Description Encrypts a secret (text or file) with a password and embeds it into a PNG, BMP, or WAV carrier using LSB steganography.
// @Tags Steganography
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param carrier formData file true "Carrier file (PNG, BMP, or WAV)"
// @Param secret formData file false "Secret file to embed"
// @Param text formData string false "Secret text to embed, used when no secret file is supplied"
// @Param password formData string true "Password used to derive the encryption key"
// @Param depth formData int false "LSB depth 1-4 (default 1)"
// @Param high_security formData string false "Use the higher PBKDF2 iteration count" Enums(true, false)
// @Param compress formData string false "Compress the payload before encryption" Enums(true, false)
// @Param platform formData string false "desktop or mobile" Enums(desktop, mobile)
// @Param expert formData string false "Allow LSB depths above 1" Enums(true, false)
// @Success 200 {file} file "Successfully embedded payload"
// @Header 200 {number} X-PSNR-Value "Peak signal-to-noise ratio of the stego carrier"
// @Failure 400 {object} models.ErrorResponse "Bad Request"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /encode [post]
func (h *Handlers) EncodeHandler(c *gin.Context) {
	startTime := time.Now()
	reqID := requestID(c)
	log.Printf("[INFO] [%s] EncodeHandler: starting request from %s", reqID, c.ClientIP())

	carrierHeader, err := c.FormFile("carrier")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "Carrier file not provided")
		return
	}
	carrierData, err := readFormFile(carrierHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read carrier file")
		return
	}

	kind, err := validate.SniffCarrierKind(carrierData)
	if err != nil {
		sendModelError(c, err)
		return
	}

	password := c.PostForm("password")
	if password == "" {
		sendError(c, http.StatusBadRequest, "MISSING_PASSWORD", "Password is required")
		return
	}

	payloadModel, err := readPayload(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_PAYLOAD", err.Error())
		return
	}

	opts := models.EncodeOptions{
		LSBDepth:     formInt(c, "depth", 1),
		HighSecurity: c.PostForm("high_security") == "true",
		Compress:     c.DefaultPostForm("compress", "true") == "true",
		Platform:     formPlatform(c),
		Expert:       c.PostForm("expert") == "true",
	}

	result, err := h.steganographyService.Encode(carrierData, kind, *payloadModel, password, opts)
	if err != nil {
		sendModelError(c, err)
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Header(headerPSNR, fmt.Sprintf("%.2f", result.PSNR))
	if len(result.Warnings) > 0 {
		c.Header(headerWarnings, fmt.Sprintf("%v", result.Warnings))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"stego.%s\"", result.StegoKind))
	c.Data(http.StatusOK, contentTypeFor(result.StegoKind), result.StegoBytes)
}

// DecodeHandler handles the extract request.
// @Summary Extract and Decrypt a Payload from a Stego Carrier
// @Description Extracts the embedded encrypted payload from a PNG, BMP, or WAV stego carrier and decrypts it with the given password.
// @Tags Steganography
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param carrier formData file true "Stego carrier file"
// @Param password formData string true "Password the payload was encrypted with"
// @Param depth formData int false "LSB depth 1-4 (default 1)"
// @Param platform formData string false "desktop or mobile" Enums(desktop, mobile)
// @Param expert formData string false "Allow LSB depths above 1" Enums(true, false)
// @Success 200 {file} file "Successfully extracted payload"
// @Failure 400 {object} models.ErrorResponse "Bad Request"
// @Failure 401 {object} models.ErrorResponse "Decrypt failure"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /decode [post]
func (h *Handlers) DecodeHandler(c *gin.Context) {
	startTime := time.Now()
	reqID := requestID(c)
	log.Printf("[INFO] [%s] DecodeHandler: starting request from %s", reqID, c.ClientIP())

	carrierHeader, err := c.FormFile("carrier")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "Carrier file not provided")
		return
	}
	carrierData, err := readFormFile(carrierHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read carrier file")
		return
	}

	kind, err := validate.SniffCarrierKind(carrierData)
	if err != nil {
		sendModelError(c, err)
		return
	}

	password := c.PostForm("password")
	if password == "" {
		sendError(c, http.StatusBadRequest, "MISSING_PASSWORD", "Password is required")
		return
	}

	opts := models.DecodeOptions{
		LSBDepth: formInt(c, "depth", 1),
		Platform: formPlatform(c),
		Expert:   c.PostForm("expert") == "true",
	}

	decoded, err := h.steganographyService.Decode(carrierData, kind, password, opts)
	if err != nil {
		sendModelError(c, err)
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Header("X-Payload-Kind", string(decoded.Kind))
	filename := decoded.Name
	if filename == "" {
		filename = "recovered_data.bin"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	mime := decoded.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Data(http.StatusOK, mime, decoded.Bytes)
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func readPayload(c *gin.Context) (*models.Payload, error) {
	if secretHeader, err := c.FormFile("secret"); err == nil {
		data, err := readFormFile(secretHeader)
		if err != nil {
			return nil, err
		}
		return &models.Payload{
			Kind:     models.PayloadFile,
			Bytes:    data,
			Name:     secretHeader.Filename,
			MimeType: secretHeader.Header.Get("Content-Type"),
		}, nil
	}
	if text := c.PostForm("text"); text != "" {
		return &models.Payload{Kind: models.PayloadText, Bytes: []byte(text)}, nil
	}
	return nil, fmt.Errorf("either a secret file or text payload is required")
}

func formInt(c *gin.Context, key string, def int) int {
	v := c.PostForm(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func formPlatform(c *gin.Context) models.Platform {
	if c.PostForm("platform") == "mobile" {
		return models.PlatformMobile
	}
	return models.PlatformDesktop
}

func contentTypeFor(kind models.CarrierKind) string {
	switch kind {
	case models.CarrierPNG:
		return "image/png"
	case models.CarrierBMP:
		return "image/bmp"
	case models.CarrierWAV:
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}

// sendError sends a standardized error response.
func sendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Message: message,
			Details: map[string]interface{}{"code": code},
		},
	})
}

// sendModelError maps a models.Error's Kind to the appropriate HTTP status.
func sendModelError(c *gin.Context, err error) {
	perr, ok := err.(*models.Error)
	if !ok {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch perr.Kind {
	case models.KindUnsupportedFormat, models.KindDepthPolicy, models.KindNoHiddenData:
		status = http.StatusBadRequest
	case models.KindCapacityExceeded:
		status = http.StatusRequestEntityTooLarge
	case models.KindDecryptFailure:
		status = http.StatusUnauthorized
	case models.KindCancelled:
		status = http.StatusRequestTimeout
	}
	sendError(c, status, string(perr.Kind), perr.Message)
}
