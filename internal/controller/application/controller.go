// Package application provides HTTP handlers for job applications.
package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// ApplicationController handles job application endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// Apply creates an application for the given job. A user can apply to a job
// at most once; the composite unique index backs the early duplicate check.
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID := c.Param("id")

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	application := model.JobApplication{
		UserID: user.ID,
		JobID:  job.ID,
		Status: model.ApplicationStatusPending,
	}
	if err := ac.DB.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You already applied to this job"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// MyApplications lists the caller's applications with their jobs.
func (ac *ApplicationController) MyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applications := []model.JobApplication{}
	if err := ac.DB.
		Preload("Job").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// JobApplications lists applications for a job the caller owns.
func (ac *ApplicationController) JobApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID := c.Param("id")

	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
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
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to view applications for this job"})
		return
	}

	applications := []model.JobApplication{}
	if err := ac.DB.
		Where("job_id = ?", job.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type statusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus lets the owning job's owner move an application through the
// status flow: pending, reviewed, shortlisted, interviewed, accepted, rejected.
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var update statusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be provided"})
		return
	}

	if !model.ValidApplicationStatus(update.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid status: %s", update.Status),
		})
		return
	}

	id := c.Param("id")

	var application model.JobApplication
	if err := ac.DB.Preload("Job").Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if application.Job.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only the job owner can update application status"})
		return
	}

	if err := ac.DB.Model(&application).Update("status", update.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}
