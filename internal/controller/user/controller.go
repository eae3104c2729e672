// Package user provides HTTP handlers for profile operations.
package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// UserController handles profile related endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

// GetProfile returns the caller's profile.
// @Summary Get the caller's profile
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Router /profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// profileInput uses pointer fields so absent keys leave the stored value
// untouched while explicit empty values clear it.
type profileInput struct {
	Name          *string   `json:"name"`
	Bio           *string   `json:"bio"`
	Skills        *[]string `json:"skills"`
	LinkedinURL   *string   `json:"linkedin_url"`
	WalletAddress *string   `json:"wallet_address"`
	Avatar        *string   `json:"avatar"`
}

// EditProfile applies a partial update to the caller's profile.
// @Summary Update the caller's profile
// @Description Only the fields present in the body are updated.
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body profileInput true "Profile fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile [patch]
func (uc *UserController) EditProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Skills != nil {
		updates["skills"] = pq.StringArray(*input.Skills)
	}
	if input.LinkedinURL != nil {
		updates["linkedin_url"] = *input.LinkedinURL
	}
	if input.WalletAddress != nil {
		updates["wallet_address"] = *input.WalletAddress
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
			})
			return
		}
	}

	var updated model.User
	if err := uc.DB.Where("id = ?", user.ID).First(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
