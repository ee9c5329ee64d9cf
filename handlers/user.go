package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Me(c *gin.Context) {
	user := a.Store.CurrentUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) Users(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Users())
}

func (a *API) GetUser(c *gin.Context) {
	user := a.Store.UserByID(c.Param("id"))
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) ToggleFollow(c *gin.Context) {
	if err := a.Store.ToggleFollow(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
}

func (a *API) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.UpdateProfile(req.Username, req.Email); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, a.Store.CurrentUser())
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (a *API) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The store replaces the password unconditionally; verifying the old
	// one is this surface's job.
	if !a.Store.VerifyPassword(req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}
	if err := a.Store.UpdatePassword(req.NewPassword); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

func (a *API) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.UpdateAvatar(req.Avatar); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, a.Store.CurrentUser())
}

func (a *API) ToggleBan(c *gin.Context) {
	if err := a.Store.ToggleBan(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (a *API) ToggleDonor(c *gin.Context) {
	if err := a.Store.ToggleDonor(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (a *API) DeleteUser(c *gin.Context) {
	if err := a.Store.DeleteUser(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
