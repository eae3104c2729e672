// Package post provides HTTP handlers for the social feed: posts, comments
// and likes.
package post

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

// PostController handles social feed endpoints
type PostController struct {
	DB *database.DBinstanceStruct
}

// NewPostController creates a new instance of PostController
func NewPostController(db *database.DBinstanceStruct) *PostController {
	return &PostController{
		DB: db,
	}
}

type postInput struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Tags    []string `json:"tags"`
	Image   string   `json:"image"`
}

// CreatePost creates a feed post owned by the caller.
func (pc *PostController) CreatePost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	post := model.Post{
		UserID:  user.ID,
		Title:   input.Title,
		Content: input.Content,
		Type:    input.Type,
		Tags:    model.EncodeStringList(input.Tags),
		Image:   input.Image,
	}
	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts fetches all posts, newest first.
func (pc *PostController) ListPosts(c *gin.Context) {
	posts := []model.Post{}
	if err := pc.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch posts: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPostByID fetches a single post with its comments.
func (pc *PostController) GetPostByID(c *gin.Context) {
	id := c.Param("id")

	var post model.Post
	if err := pc.DB.Preload("Comments").Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve post: %s", err.Error()),
		})
		return
	}

	var likeCount int64
	pc.DB.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&likeCount)

	c.JSON(http.StatusOK, gin.H{
		"post":       post,
		"like_count": likeCount,
	})
}

// UpdatePost allows the owner to update a post.
func (pc *PostController) UpdatePost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var post model.Post
	if err := pc.DB.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve post: %s", err.Error()),
		})
		return
	}

	if post.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to edit this post"})
		return
	}

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	updates := model.Post{
		Title:   input.Title,
		Content: input.Content,
		Type:    input.Type,
		Tags:    model.EncodeStringList(input.Tags),
		Image:   input.Image,
	}
	if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost allows the owner to delete a post.
func (pc *PostController) DeletePost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var post model.Post
	if err := pc.DB.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve post: %s", err.Error()),
		})
		return
	}

	if post.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to delete this post"})
		return
	}

	if err := pc.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Post deleted"})
}

type commentInput struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment adds a comment to a post.
func (pc *PostController) CreateComment(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var post model.Post
	if err := pc.DB.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve post: %s", err.Error()),
		})
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Content must be provided"})
		return
	}

	comment := model.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: input.Content,
	}
	if err := pc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create comment: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments lists a post's comments, oldest first.
func (pc *PostController) ListComments(c *gin.Context) {
	id := c.Param("id")

	comments := []model.Comment{}
	if err := pc.DB.
		Where("post_id = ?", id).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch comments: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment allows the comment's author to delete it.
func (pc *PostController) DeleteComment(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var comment model.Comment
	if err := pc.DB.Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve comment: %s", err.Error()),
		})
		return
	}

	if comment.UserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to delete this comment"})
		return
	}

	if err := pc.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete comment: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Comment deleted"})
}

// ToggleLike likes a post, or removes the caller's like when it exists.
func (pc *PostController) ToggleLike(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var post model.Post
	if err := pc.DB.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve post: %s", err.Error()),
		})
		return
	}

	var like model.PostLike
	err = pc.DB.Where("post_id = ? AND user_id = ?", post.ID, user.ID).First(&like).Error
	switch {
	case err == nil:
		if err := pc.DB.Delete(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to remove like: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": false})

	case errors.Is(err, gorm.ErrRecordNotFound):
		like = model.PostLike{PostID: post.ID, UserID: user.ID}
		if err := pc.DB.Create(&like).Error; err != nil {
			// A concurrent like of the same post collapses onto the unique pair.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusOK, gin.H{"liked": true})
				return
			}
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to like post: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": true})

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check like: %s", err.Error()),
		})
	}
}
