package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/rndas/wallie/agent/contract"
)

type Config struct {
	Addr string `envconfig:"ADDR" split_words:"true" default:":8080"`
}

func SetupRouter(m *Manager) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": m.Len()})
	})

	api := r.Group("/api")
	{
		api.POST("/sessions", CreateSessionHandler(m))
		api.POST("/chat", ChatHandler(m))
	}
	return r
}

// corsMiddleware lets the storefront frontend call the chat API from
// another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func CreateSessionHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := m.Create(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("session create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id": res.SessionID,
			"reply":      res.Greeting,
		})
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func ChatHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and text are required"})
			return
		}

		res, err := m.Turn(c.Request.Context(), req.SessionID, req.Text)
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		case errors.Is(err, contractx.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		case err != nil:
			log.Error().Err(err).Str("session_id", req.SessionID).Msg("turn failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"reply": res.Reply,
			"phase": res.Phase,
			"done":  res.Done,
		})
	}
}
