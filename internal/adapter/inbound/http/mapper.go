package http

import (
	"time"

	"github.com/stridelab/wellness-challenges/internal/domain/model"
)

// Request DTOs

type createChallengeRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Goal      string    `json:"goal"`
}

type addParticipantRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type submitProgressRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Value  int    `json:"value"`
}

// Response DTOs

type challengeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Goal      string    `json:"goal"`
}

type challengeDetailResponse struct {
	challengeResponse
	Participants []participantResponse `json:"participants"`
}

type participantResponse struct {
	ID          string `json:"id"`
	ChallengeID string `json:"challenge_id"`
	UserID      string `json:"user_id"`
}

type submissionAcceptedResponse struct {
	EventID     string    `json:"event_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type leaderboardEntryResponse struct {
	UserID     string `json:"user_id"`
	TotalValue int64  `json:"total_value"`
}

// Mappers

func toChallengeResponse(c *model.Challenge) challengeResponse {
	return challengeResponse{
		ID:        c.ID().String(),
		Name:      c.Name(),
		StartDate: c.StartDate(),
		EndDate:   c.EndDate(),
		Goal:      c.Goal(),
	}
}

func toChallengeDetailResponse(c *model.Challenge, participants []*model.Participant) challengeDetailResponse {
	resp := challengeDetailResponse{
		challengeResponse: toChallengeResponse(c),
		Participants:      make([]participantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, toParticipantResponse(p))
	}
	return resp
}

func toParticipantResponse(p *model.Participant) participantResponse {
	return participantResponse{
		ID:          p.ID().String(),
		ChallengeID: p.ChallengeID().String(),
		UserID:      p.UserID().String(),
	}
}

func toLeaderboardResponse(l model.Leaderboard) []leaderboardEntryResponse {
	resp := make([]leaderboardEntryResponse, 0, len(l.Entries))
	for _, e := range l.Entries {
		resp = append(resp, leaderboardEntryResponse{
			UserID:     e.UserID.String(),
			TotalValue: e.TotalValue,
		})
	}
	return resp
}
