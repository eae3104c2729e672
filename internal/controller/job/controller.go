// Package job provides HTTP handlers for job post operations, including the
// payment-gated creation flow and skill-overlap matching.
package job

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/matcher"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/solana"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// JobController handles job post related endpoints
type JobController struct {
	DB       *database.DBinstanceStruct
	Verifier *solana.Verifier
	Cfg      *config.Config
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct, verifier *solana.Verifier, cfg *config.Config) *JobController {
	return &JobController{
		DB:       db,
		Verifier: verifier,
		Cfg:      cfg,
	}
}

// jobInput mirrors EditableJobInfo with list-typed skills and tags, which are
// serialized before storage.
type jobInput struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	CompanyName     string   `json:"company_name"`
	Role            string   `json:"role"`
	Industry        string   `json:"industry"`
	ExperienceLevel string   `json:"experience_level"`
	CompanyType     string   `json:"company_type"`
	Skills          []string `json:"skills"`
	Tags            []string `json:"tags"`
	Budget          string   `json:"budget"`
	WorkMode        string   `json:"work_mode"`
	Location        string   `json:"location"`
	Status          string   `json:"status"`
}

func (in *jobInput) toEditableInfo() model.EditableJobInfo {
	status := in.Status
	if status == "" {
		status = model.JobStatusActive
	}
	return model.EditableJobInfo{
		Title:           in.Title,
		Description:     in.Description,
		CompanyName:     in.CompanyName,
		Role:            in.Role,
		Industry:        in.Industry,
		ExperienceLevel: in.ExperienceLevel,
		CompanyType:     in.CompanyType,
		Skills:          model.EncodeStringList(in.Skills),
		Tags:            model.EncodeStringList(in.Tags),
		Budget:          in.Budget,
		WorkMode:        in.WorkMode,
		Location:        in.Location,
		Status:          status,
	}
}

// CreateJob handles the creation of a new job post, gated by a confirmed
// posting-fee payment within the last 24 hours.
// @Summary Create job post based on given json structure
// @Description Requires a confirmed payment of at least the posting fee within the last 24 hours, unless the fee is configured as zero.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body jobInput true "Job information"
// @Success 201 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct"
// @Failure 402 {object} utilities.ErrorResponse "No qualifying payment"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input jobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	required := jc.Cfg.RequiredLamports()
	ok, err := jc.Verifier.HasQualifyingPayment(user.ID, required)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check payment: %s", err.Error()),
		})
		return
	}
	if !ok {
		c.JSON(http.StatusPaymentRequired, utilities.ErrorResponse{
			Error: "A confirmed posting-fee payment within the last 24 hours is required",
		})
		return
	}

	job := model.Job{
		UserID:          user.ID,
		EditableJobInfo: input.toEditableInfo(),
	}
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job post: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs fetches all active job posts, newest first.
func (jc *JobController) ListJobs(c *gin.Context) {
	jobs := []model.Job{}

	err := jc.DB.
		Where("status = ?", model.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job posts: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a single job post. The views field is carried on the
// row but no read path increments it.
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	var job model.Job
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// EditJob allows the owner to update a job post.
func (jc *JobController) EditJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var job model.Job
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if job.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to edit this job post"})
		return
	}

	var input jobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Model(&job).Updates(model.Job{EditableJobInfo: input.toEditableInfo()}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job post: %s", err.Error()),
		})
		return
	}

	// Reload to return the latest data
	if err := jc.DB.Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob allows the owner to delete a job post.
func (jc *JobController) DeleteJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var job model.Job
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if job.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to delete this job post"})
		return
	}

	if err := jc.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job post deleted"})
}

// MatchJobs returns jobs ranked by overlap with the caller's skills.
// @Summary Ranked job matches for the caller
// @Description Scores every job by the count of its skills present in the caller's skill list. Users without skills get an empty list.
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param limit query int false "Maximum number of matches" default(10)
// @Success 200 {array} matcher.ScoredJob
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/match [get]
func (jc *JobController) MatchJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(matcher.DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = matcher.DefaultLimit
	}

	if len(user.Skills) == 0 {
		c.JSON(http.StatusOK, []matcher.ScoredJob{})
		return
	}

	var jobs []model.Job
	if err := jc.DB.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch job posts: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, matcher.Rank(user.Skills, jobs, limit))
}
