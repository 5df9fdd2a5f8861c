package chat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matiasbenary/mcp-meilisearch/pkg/llm"
	"github.com/matiasbenary/mcp-meilisearch/pkg/logging"
	"github.com/matiasbenary/mcp-meilisearch/pkg/middleware"
)

type ChatHandler struct {
	Sessions     *SessionStore
	Orchestrator *Orchestrator
	Logger       logging.Logger
}

// ChatRequest is the /api/chat body. The messages field carries a single
// user message; the name is kept for client compatibility.
type ChatRequest struct {
	Messages string `json:"messages"`
	ThreadID string `json:"threadId,omitempty"`
}

type ChatResponse struct {
	Message  string   `json:"message"`
	ThreadID string   `json:"threadId"`
	Sources  []Source `json:"sources"`
}

func NewChatHandler(sessions *SessionStore, orchestrator *Orchestrator, logger logging.Logger) *ChatHandler {
	return &ChatHandler{
		Sessions:     sessions,
		Orchestrator: orchestrator,
		Logger:       logger,
	}
}

func RegisterRoutes(router gin.IRoutes, handler *ChatHandler) {
	router.POST("/api/chat", handler.HandleChat)
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Messages) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = NewThreadID()
	}
	history := h.Sessions.Get(threadID)

	result, err := h.Orchestrator.Run(c.Request.Context(), history, req.Messages)
	if err != nil {
		var notConfigured *llm.NotConfiguredError
		if errors.As(err, &notConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": notConfigured.Error()})
			return
		}
		if h.Logger != nil {
			h.Logger.WithFields(logging.Fields{
				"request_id": middleware.GetRequestID(c),
				"thread_id":  threadID,
			}).WithError(err).Error("chat exchange failed")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat request"})
		return
	}

	h.Sessions.Put(threadID, result.History)
	sessionsStored.Set(float64(h.Sessions.Len()))

	c.JSON(http.StatusOK, ChatResponse{
		Message:  result.Answer,
		ThreadID: threadID,
		Sources:  result.Sources,
	})
}
