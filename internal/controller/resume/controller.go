// Package resume provides the HTTP handler for resume upload and parsing.
package resume

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	parser "github.com/dineshsutihar/Hire3-sub000/internal/resume"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// ResumeController handles resume parsing endpoints
type ResumeController struct {
	DB       *database.DBinstanceStruct
	Enricher *parser.Enricher
}

// NewResumeController creates a new instance of ResumeController
func NewResumeController(db *database.DBinstanceStruct, enricher *parser.Enricher) *ResumeController {
	return &ResumeController{
		DB:       db,
		Enricher: enricher,
	}
}

// parseResponse is the body returned by ParseResume.
type parseResponse struct {
	Skills     []string          `json:"skills"`
	Enrichment parser.Enrichment `json:"enrichment"`
}

// ParseResume accepts a multipart PDF upload, extracts its text, optionally
// enriches it through the LLM, and merges extracted skills into the caller's
// profile. Enrichment and the final profile write are best-effort: their
// failures are logged and the computed skill list is still returned.
// @Summary Parse an uploaded resume and merge extracted skills into the profile
// @Tags Resume
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Resume file (PDF)"
// @Success 200 {object} parseResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing file, extraction failure, or empty document"
// @Failure 404 {object} utilities.ErrorResponse "Uploaded file went missing"
// @Failure 415 {object} utilities.ErrorResponse "Not a PDF"
// @Failure 429 {object} utilities.ErrorResponse "Rate limit exceeded"
// @Router /resume/parse [post]
func (rc *ResumeController) ParseResume(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rawFile, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	if rawFile.Header.Get("Content-Type") != "application/pdf" {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: "Only PDF resumes are supported",
		})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("resume-%s-%d.pdf", user.ID, time.Now().UnixNano()))
	if err := c.SaveUploadedFile(rawFile, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store upload: %s", err.Error()),
		})
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("failed to remove temp resume %s: %v", tmpPath, err)
		}
	}()

	text, err := parser.ExtractText(tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Uploaded file not found"})
		case errors.Is(err, parser.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Resume contains no extractable text"})
		default:
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to parse resume: %s", err.Error()),
			})
		}
		return
	}

	enrichment := rc.Enricher.Enrich(c.Request.Context(), text)

	merged := parser.MergeSkills(user.Skills, enrichment.Skills)

	// Best-effort persist: the caller still gets the merged list even when
	// the profile write fails.
	if err := rc.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("skills", pq.StringArray(merged)).Error; err != nil {
		log.Printf("failed to persist merged skills for user %s: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, parseResponse{
		Skills:     merged,
		Enrichment: enrichment,
	})
}
