// Package http is the inbound HTTP adapter: a thin layer that decodes
// requests, dispatches to command/query handlers, and renders results.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stridelab/wellness-challenges/internal/port/inbound/command"
	"github.com/stridelab/wellness-challenges/internal/port/inbound/query"
)

// HandlerConfig wires the command and query handlers the API dispatches to.
type HandlerConfig struct {
	CreateChallengeHandler      command.CreateChallengeHandler
	AddParticipantHandler       command.AddParticipantHandler
	SubmitProgressHandler       command.SubmitProgressHandler
	GetChallengeHandler         query.GetChallengeHandler
	ListActiveChallengesHandler query.ListActiveChallengesHandler
	GetLeaderboardHandler       query.GetLeaderboardHandler
}

// Handler exposes the HTTP endpoints.
type Handler struct {
	cfg HandlerConfig
}

// NewHandler creates a new Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

// Register mounts the API routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/challenges", h.createChallenge)
		api.GET("/challenges/:id", h.getChallenge)
		api.POST("/challenges/:id/participants", h.addParticipant)
		api.POST("/challenges/:id/progress", h.submitProgress)
		api.GET("/challenges/:id/leaderboard", h.getLeaderboard)
		api.GET("/users/:userId/challenges/active", h.listActiveChallenges)
	}
}

func (h *Handler) createChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.cfg.CreateChallengeHandler.Handle(c.Request.Context(), command.CreateChallenge{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Goal:      req.Goal,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toChallengeResponse(result.Challenge))
}

func (h *Handler) getChallenge(c *gin.Context) {
	challengeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.cfg.GetChallengeHandler.Handle(c.Request.Context(), query.GetChallenge{
		ChallengeID: challengeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toChallengeDetailResponse(result.Challenge, result.Participants))
}

func (h *Handler) addParticipant(c *gin.Context) {
	challengeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, _ := uuid.Parse(req.UserID) // validated by the binding

	result, err := h.cfg.AddParticipantHandler.Handle(c.Request.Context(), command.AddParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toParticipantResponse(result.Participant))
}

func (h *Handler) submitProgress(c *gin.Context) {
	challengeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req submitProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	result, err := h.cfg.SubmitProgressHandler.Handle(c.Request.Context(), command.SubmitProgress{
		ChallengeID: challengeID,
		UserID:      userID,
		Value:       req.Value,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// Accepted, not created: processing is asynchronous and the caller only
	// learns the queue took the event.
	c.JSON(http.StatusAccepted, submissionAcceptedResponse{
		EventID:     result.EventID.String(),
		SubmittedAt: result.SubmittedAt,
	})
}

func (h *Handler) getLeaderboard(c *gin.Context) {
	challengeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.cfg.GetLeaderboardHandler.Handle(c.Request.Context(), query.GetLeaderboard{
		ChallengeID: challengeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLeaderboardResponse(result.Leaderboard))
}

func (h *Handler) listActiveChallenges(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	result, err := h.cfg.ListActiveChallengesHandler.Handle(c.Request.Context(), query.ListActiveChallenges{
		UserID: userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	challenges := make([]challengeResponse, 0, len(result.Challenges))
	for _, challenge := range result.Challenges {
		challenges = append(challenges, toChallengeResponse(challenge))
	}
	c.JSON(http.StatusOK, challenges)
}

// pathUUID parses a UUID path parameter, rendering a 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "INVALID_ID",
			Message: "path parameter " + name + " must be a valid UUID",
		})
		return uuid.Nil, false
	}
	return id, true
}
