package api

import (
	"errors"
	"net/http"
	"time"

	"securitybot_go_backend/internal/auth"
	apperrors "securitybot_go_backend/internal/errors"
	"securitybot_go_backend/internal/models"
	"securitybot_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SetupRoutes(r *gin.Engine, chatService *services.ChatService, gamificationService *services.GamificationService, userService *services.UserService) {
	api := r.Group("/api")
	{
		api.POST("/chat/message", sendMessageHandler(chatService))
		api.GET("/chat/messages/:session_id", getMessagesHandler(chatService))
		api.GET("/chat/sessions", listSessionsHandler(chatService))
		api.DELETE("/chat/sessions/:session_id", deleteSessionHandler(chatService))
		api.POST("/gamification/points", auth.AuthMiddleware(userService), awardPointsHandler(gamificationService))
		api.GET("/user/:id", auth.AuthMiddleware(userService), getProfileHandler(userService))
		api.PUT("/user/:id", auth.AuthMiddleware(userService), updateProfileHandler(userService))
		api.PUT("/user/:id/password", auth.AuthMiddleware(userService), changePasswordHandler(userService))
	}
}

func sendMessageHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			SessionID string `json:"session_id" binding:"required"`
			Message   string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}

		reply, err := chatService.SendMessage(c.Request.Context(), request.SessionID, request.Message)
		if err != nil {
			if errors.Is(err, services.ErrUpstream) {
				apperrors.HandleError(c, apperrors.New502Error("assistant is temporarily unavailable", err))
				return
			}
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"response":   reply.Response,
			"message_id": reply.MessageID,
			"title":      reply.Title,
		})
	}
}

func getMessagesHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		messages, err := chatService.History(sessionID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		history := make([]gin.H, len(messages))
		for i, msg := range messages {
			history[i] = gin.H{
				"id":         msg.ID,
				"role":       msg.Role,
				"message":    msg.Content,
				"created_at": msg.CreatedAt.Format(time.RFC3339),
			}
		}

		c.JSON(http.StatusOK, history)
	}
}

func listSessionsHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := chatService.Sessions()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		list := make([]gin.H, len(sessions))
		for i, session := range sessions {
			list[i] = gin.H{
				"session_id": session.SessionID,
				"title":      session.Title,
				"created_at": session.CreatedAt.Format(time.RFC3339),
			}
		}

		c.JSON(http.StatusOK, list)
	}
}

func deleteSessionHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		if err := chatService.DeleteSession(sessionID); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func awardPointsHandler(gamificationService *services.GamificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			UserID    string `json:"user_id" binding:"required"`
			MessageID uint   `json:"message_id" binding:"required"`
			Points    int    `json:"points"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}

		userID, err := uuid.Parse(request.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("invalid user_id"))
			return
		}

		// points can only be claimed for the account that holds the token
		caller, exists := c.Get("user")
		if !exists {
			apperrors.HandleError(c, apperrors.New401Error("authentication required"))
			return
		}
		if caller.(*models.User).ID != userID {
			apperrors.HandleError(c, apperrors.New403Error("cannot award points to another user"))
			return
		}

		result, err := gamificationService.AwardPoints(userID, request.MessageID, request.Points)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyAwarded):
				apperrors.HandleError(c, apperrors.New409Error("You have already answered this quiz!"))
			case errors.Is(err, services.ErrUserNotFound):
				apperrors.HandleError(c, apperrors.New404Error("user not found"))
			default:
				apperrors.HandleError(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"new_points": result.NewPoints,
			"new_level":  result.NewLevel,
			"leveled_up": result.LeveledUp,
		})
	}
}

func getProfileHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("invalid user id"))
			return
		}

		user, err := userService.GetProfile(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.New404Error("user not found"))
				return
			}
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":   user.Name,
			"email":  user.Email,
			"level":  user.Level,
			"points": user.Points,
		})
	}
}

func updateProfileHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("invalid user id"))
			return
		}

		var request struct {
			Name  string `json:"name" binding:"required"`
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}

		if err := userService.UpdateProfile(userID, request.Name, request.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				apperrors.HandleError(c, apperrors.New409Error("email is already registered"))
			case errors.Is(err, services.ErrUserNotFound):
				apperrors.HandleError(c, apperrors.New404Error("user not found"))
			default:
				apperrors.HandleError(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func changePasswordHandler(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("invalid user id"))
			return
		}

		var request struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apperrors.HandleError(c, apperrors.New400Error(err.Error()))
			return
		}

		if err := userService.ChangePassword(userID, request.CurrentPassword, request.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				apperrors.HandleError(c, apperrors.New401Error("current password is incorrect"))
			case errors.Is(err, services.ErrUserNotFound):
				apperrors.HandleError(c, apperrors.New404Error("user not found"))
			default:
				apperrors.HandleError(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
