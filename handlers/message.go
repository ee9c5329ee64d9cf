package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

func (a *API) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Store.SendMessage(req.RecipientID, req.Text); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

// Conversation returns the derived thread between the session user and
// another user, oldest first.
func (a *API) Conversation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages": a.Store.Conversation(c.Param("id")),
	})
}

func (a *API) MarkMessagesAsRead(c *gin.Context) {
	if err := a.Store.MarkMessagesAsRead(c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (a *API) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": a.Store.SessionNotifications(),
		"unread":        a.Store.UnreadNotificationCount(),
	})
}

func (a *API) MarkNotificationsAsRead(c *gin.Context) {
	if err := a.Store.MarkNotificationsAsRead(); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Unread powers the header badges in one round trip.
func (a *API) Unread(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": a.Store.UnreadNotificationCount(),
		"messages":      a.Store.UnreadMessageCount(),
	})
}

// ToastState lets the UI poll the current transient status message.
func (a *API) ToastState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"toast": a.Store.Toast()})
}
