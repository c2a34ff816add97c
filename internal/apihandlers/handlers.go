package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tasnif/internal/app"
	"tasnif/internal/models"
	"tasnif/internal/services"
	"tasnif/internal/store"
	"tasnif/pkg/classifier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// ClassifyRequest represents the JSON body of a dialogue turn. SessionID is
// empty on the opening turn.
type ClassifyRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ClassifyHandler advances a clarification dialogue by one turn.
func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		BadRequest(c, "Missing required field: message")
		return
	}

	var sessionID *uuid.UUID
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			BadRequest(c, "Invalid session_id format: "+req.SessionID)
			return
		}
		sessionID = &parsed
	}

	outcome, err := h.App.ClassificationService.HandleMessage(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			BadRequest(c, err.Error())
		case errors.Is(err, models.ErrNotFound):
			NotFound(c, "Session not found: "+req.SessionID)
		case errors.Is(err, models.ErrSessionClosed):
			Conflict(c, "Session is already closed: "+req.SessionID)
		default:
			Internal(c, fmt.Sprintf("ClassifyHandler: classification failed: %v", err))
		}
		return
	}

	h.respondWithOutcome(c, outcome)
}

func (h *APIHandler) respondWithOutcome(c *gin.Context, outcome *services.ClassificationOutcome) {
	if outcome.Kind == classifier.KindNeedsClarification {
		c.JSON(http.StatusOK, gin.H{
			"session_id": outcome.SessionID.String(),
			"status":     "needs_clarification",
			"question":   outcome.Question,
			"options":    outcome.Options,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": outcome.SessionID.String(),
		"status":     "classified",
		"category": gin.H{
			"id":   outcome.CategoryID,
			"name": outcome.CategoryName,
		},
		"subcategory": gin.H{
			"id":   outcome.SubcategoryID,
			"name": outcome.SubcategoryName,
		},
	})
}

// TaxonomyHandler returns the category tree the classifier works against.
func (h *APIHandler) TaxonomyHandler(c *gin.Context) {
	snapshot, err := h.App.TaxonomyService.Snapshot(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			NotFound(c, "Taxonomy is empty")
			return
		}
		Internal(c, fmt.Sprintf("TaxonomyHandler: failed to load taxonomy: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": snapshot})
}

// CreateTopicRequest represents the JSON body to create a topic. When
// Classify is true the response carries a category suggestion for the new
// topic alongside the stored record.
type CreateTopicRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Classify bool   `json:"classify"`
}

func (h *APIHandler) CreateTopicHandler(c *gin.Context) {
	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	topic, err := h.App.TopicService.CreateTopic(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			BadRequest(c, err.Error())
			return
		}
		Internal(c, fmt.Sprintf("CreateTopicHandler: failed to create topic: %v", err))
		return
	}

	resp := gin.H{"data": topic}
	if req.Classify {
		outcome, err := h.App.TopicService.SuggestCategory(c.Request.Context(), topic)
		if err != nil {
			Internal(c, fmt.Sprintf("CreateTopicHandler: failed to suggest category: %v", err))
			return
		}
		resp["suggestion"] = gin.H{
			"category": gin.H{
				"id":   outcome.CategoryID,
				"name": outcome.CategoryName,
			},
			"subcategory": gin.H{
				"id":   outcome.SubcategoryID,
				"name": outcome.SubcategoryName,
			},
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *APIHandler) GetTopicHandler(c *gin.Context) {
	id, err := parseTopicIDFromRequest(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	topic, err := h.App.TopicService.GetTopic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("Topic not found with ID: %d", id))
			return
		}
		Internal(c, fmt.Sprintf("GetTopicHandler: failed to retrieve topic: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": topic})
}

func (h *APIHandler) ListTopicsHandler(c *gin.Context) {
	limit := 20
	offset := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		} else {
			BadRequest(c, "Invalid limit: "+l)
			return
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		} else {
			BadRequest(c, "Invalid offset: "+o)
			return
		}
	}

	topics, err := h.App.TopicService.ListTopics(c.Request.Context(), limit, offset)
	if err != nil {
		Internal(c, fmt.Sprintf("ListTopicsHandler: failed to list topics: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": topics})
}

// ReclassifyTopicHandler enqueues a background reclassification job and
// returns 202: the work happens on the worker.
func (h *APIHandler) ReclassifyTopicHandler(c *gin.Context) {
	id, err := parseTopicIDFromRequest(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.App.TopicService.EnqueueReclassify(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("Topic not found with ID: %d", id))
			return
		}
		Internal(c, fmt.Sprintf("ReclassifyTopicHandler: failed to enqueue job: %v", err))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"topic_id": id, "status": "enqueued"})
}

// HealthHandler reports readiness of the primary store.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.TaxonomyStore.Ping(c.Request.Context()); err != nil {
		JSONError(c, http.StatusServiceUnavailable, "unavailable", "database unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseTopicIDFromRequest parses the topic ID from path or query.
func parseTopicIDFromRequest(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	if idStr == "" {
		idStr = c.Query("id")
	}
	if idStr == "" {
		return 0, fmt.Errorf("missing topic ID parameter (expected in path /:id or query ?id=)")
	}
	topicID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid topic ID format: %s", idStr)
	}
	return topicID, nil
}
