package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"eyecare-service/internal/config"
	"eyecare-service/internal/models"
	"eyecare-service/internal/report"
	"eyecare-service/internal/service"
	"eyecare-service/internal/utils"
)

type ScanHandler struct {
	Service *service.ScanService
}

func NewScanHandler(s *service.ScanService) *ScanHandler {
	return &ScanHandler{Service: s}
}

// Upload accepts a multipart eye image under the "eye_image" field, runs the
// AI analysis and returns the stored scan document.
func (h *ScanHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("eye_image")
	if err != nil {
		utils.BadRequestResponse(c, "eye_image file is required")
		return
	}
	maxBytes := config.AppConfig.MaxUploadMB << 20
	if fileHeader.Size > maxBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image exceeds the %d MB limit", config.AppConfig.MaxUploadMB), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read upload", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read upload", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	scan, err := h.Service.Upload(context.Background(), currentUsername(c), fileHeader.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, "Failed to analyze scan", err)
		return
	}
	utils.CreatedResponse(c, "Scan analyzed", scan)
}

func (h *ScanHandler) ListScans(c *gin.Context) {
	scans, err := h.Service.ListForUser(context.Background(), currentUsername(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list scans", err)
		return
	}
	utils.SuccessResponse(c, "Scans", scans)
}

func (h *ScanHandler) GetScan(c *gin.Context) {
	scan, ok := h.ownedScan(c)
	if !ok {
		return
	}

	url, err := h.Service.ImageURL(context.Background(), scan)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to sign image URL", err)
		return
	}
	utils.SuccessResponse(c, "Scan", gin.H{
		"scan":      scan,
		"image_url": url,
	})
}

func (h *ScanHandler) DeleteScan(c *gin.Context) {
	err := h.Service.Delete(context.Background(), c.Param("id"), currentUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotScanOwner):
			utils.ForbiddenResponse(c, "Scan belongs to another user")
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.NotFoundResponse(c, "Scan not found")
		default:
			utils.InternalErrorResponse(c, "Failed to delete scan", err)
		}
		return
	}
	utils.SuccessResponse(c, "Scan deleted", nil)
}

// DownloadPDF streams the scan's analysis as a PDF attachment.
func (h *ScanHandler) DownloadPDF(c *gin.Context) {
	scan, ok := h.ownedScan(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "eye_report_"+scan.ID+".pdf"))
	if err := report.WriteScanPDF(c.Writer, scan); err != nil {
		utils.InternalErrorResponse(c, "Failed to render PDF", err)
	}
}

// Technician routes.

func (h *ScanHandler) ListAllScans(c *gin.Context) {
	scans, err := h.Service.ListAll(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list scans", err)
		return
	}
	utils.SuccessResponse(c, "Scans", scans)
}

type validateRequest struct {
	Notes string `json:"notes"`
}

func (h *ScanHandler) ValidateScan(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.Service.Validate(context.Background(), c.Param("id"), req.Notes, currentUsername(c))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.NotFoundResponse(c, "Scan not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to validate scan", err)
		return
	}
	utils.SuccessResponse(c, "Scan validated", nil)
}

// ownedScan loads the scan and enforces ownership. Technicians may read any
// scan; patients only their own.
func (h *ScanHandler) ownedScan(c *gin.Context) (*models.EyeScan, bool) {
	scan, err := h.Service.GetScan(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.NotFoundResponse(c, "Scan not found")
		} else {
			utils.InternalErrorResponse(c, "Failed to load scan", err)
		}
		return nil, false
	}
	if scan.Username != currentUsername(c) && c.GetString(ctxRole) != models.RoleTechnician {
		utils.ForbiddenResponse(c, "Scan belongs to another user")
		return nil, false
	}
	return scan, true
}
