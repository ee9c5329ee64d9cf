package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webfree/models"
)

type CreatePostRequest struct {
	Caption string        `json:"caption"`
	Media   *models.Media `json:"media"`
}

func (a *API) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.Store.CreatePost(req.Media, req.Caption)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Feed returns all posts, most recent first.
func (a *API) Feed(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Posts())
}

func (a *API) ToggleLike(c *gin.Context) {
	if err := a.Store.ToggleLike(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (a *API) ToggleFavorite(c *gin.Context) {
	if err := a.Store.ToggleFavorite(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (a *API) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.AddComment(c.Param("id"), req.Text); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

func (a *API) DeletePost(c *gin.Context) {
	if err := a.Store.DeletePost(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (a *API) DeleteComment(c *gin.Context) {
	if err := a.Store.DeleteComment(c.Param("id"), c.Param("commentId")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
