package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpadapter "github.com/stridelab/wellness-challenges/internal/adapter/inbound/http"
	appcommand "github.com/stridelab/wellness-challenges/internal/app/command"
	appquery "github.com/stridelab/wellness-challenges/internal/app/query"
	"github.com/stridelab/wellness-challenges/internal/domain/model"
	"github.com/stridelab/wellness-challenges/internal/testutil/mocks"
)

type apiFixture struct {
	router          *gin.Engine
	challengeRepo   *mocks.ChallengeRepository
	participantRepo *mocks.ParticipantRepository
	progressRepo    *mocks.ProgressRepository
	cache           *mocks.LeaderboardCache
	queue           *mocks.ProgressPublisher
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		challengeRepo:   mocks.NewChallengeRepository(),
		participantRepo: mocks.NewParticipantRepository(),
		progressRepo:    mocks.NewProgressRepository(),
		cache:           mocks.NewLeaderboardCache(),
		queue:           mocks.NewProgressPublisher(),
	}

	publisher := mocks.NewEventPublisher()
	handler := httpadapter.NewHandler(httpadapter.HandlerConfig{
		CreateChallengeHandler:      appcommand.NewCreateChallengeHandler(f.challengeRepo, publisher),
		AddParticipantHandler:       appcommand.NewAddParticipantHandler(f.challengeRepo, f.participantRepo, publisher),
		SubmitProgressHandler:       appcommand.NewSubmitProgressHandler(f.queue),
		GetChallengeHandler:         appquery.NewGetChallengeHandler(f.challengeRepo, f.participantRepo),
		ListActiveChallengesHandler: appquery.NewListActiveChallengesHandler(f.challengeRepo),
		GetLeaderboardHandler:       appquery.NewGetLeaderboardHandler(f.progressRepo, f.cache),
	})

	f.router = gin.New()
	handler.Register(f.router)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) createChallenge(t *testing.T) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/challenges", gin.H{
		"name":       "Hydration Month",
		"start_date": "2026-08-01T00:00:00Z",
		"end_date":   "2026-08-31T00:00:00Z",
		"goal":       "2L per day",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create challenge returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.ID
}

func TestCreateChallenge(t *testing.T) {
	t.Run("returns 201 with the created challenge", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges", gin.H{
			"name":       "Hydration Month",
			"start_date": "2026-08-01T00:00:00Z",
			"end_date":   "2026-08-31T00:00:00Z",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["name"] != "Hydration Month" {
			t.Errorf("name mismatch: %v", resp["name"])
		}
		if resp["id"] == "" {
			t.Error("expected generated id")
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges", gin.H{
			"start_date": "2026-08-01T00:00:00Z",
			"end_date":   "2026-08-31T00:00:00Z",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on inverted dates", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges", gin.H{
			"name":       "Backwards",
			"start_date": "2026-08-31T00:00:00Z",
			"end_date":   "2026-08-01T00:00:00Z",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestSubmitProgress(t *testing.T) {
	t.Run("returns 202 and publishes to the queue", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)

		rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/progress", gin.H{
			"user_id": uuid.NewString(),
			"value":   12,
		})
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			EventID     string    `json:"event_id"`
			SubmittedAt time.Time `json:"submitted_at"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if _, err := uuid.Parse(resp.EventID); err != nil {
			t.Errorf("expected a UUID event id, got %q", resp.EventID)
		}
		if f.queue.Calls.Publish != 1 {
			t.Errorf("expected 1 queue publish, got %d", f.queue.Calls.Publish)
		}
		if f.progressRepo.Calls.InsertAndRank != 0 {
			t.Error("submission must not touch the store synchronously")
		}
	})

	t.Run("returns 503 when the queue is down", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)
		f.queue.Errors.Publish = errors.New("no servers available")

		rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/progress", gin.H{
			"user_id": uuid.NewString(),
			"value":   1,
		})
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		var resp struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Code != "QUEUE_UNAVAILABLE" {
			t.Errorf("expected QUEUE_UNAVAILABLE, got %q", resp.Code)
		}
	})

	t.Run("returns 400 on a bad user id", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)

		rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/progress", gin.H{
			"user_id": "not-a-uuid",
			"value":   1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on a bad challenge id in the path", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges/abc/progress", gin.H{
			"user_id": uuid.NewString(),
			"value":   1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAddParticipant(t *testing.T) {
	t.Run("returns 201 on enrollment", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)

		rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/participants", gin.H{
			"user_id": uuid.NewString(),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 on duplicate enrollment", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)
		userID := uuid.NewString()
		body := gin.H{"user_id": userID}

		if rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/participants", body); rec.Code != http.StatusCreated {
			t.Fatalf("first enrollment returned %d", rec.Code)
		}
		rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/participants", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for an unknown challenge", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges/"+uuid.NewString()+"/participants", gin.H{
			"user_id": uuid.NewString(),
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestGetLeaderboard(t *testing.T) {
	t.Run("returns the ranked totals", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := uuid.New()
		f.cache.Seed(model.NewLeaderboard(challengeID, []model.LeaderboardEntry{
			{UserID: uuid.New(), TotalValue: 21},
			{UserID: uuid.New(), TotalValue: 13},
		}))

		rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/challenges/%s/leaderboard", challengeID), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp []struct {
			UserID     string `json:"user_id"`
			TotalValue int64  `json:"total_value"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp) != 2 || resp[0].TotalValue != 21 {
			t.Errorf("unexpected ranking: %+v", resp)
		}
	})

	t.Run("returns an empty array for a cold challenge", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/challenges/%s/leaderboard", uuid.New()), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("expected empty array, got %s", body)
		}
	})
}

func TestListActiveChallenges(t *testing.T) {
	t.Run("returns only challenges the user joined", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/challenges", gin.H{
			"name":       "Always On",
			"start_date": "2000-01-01T00:00:00Z",
			"end_date":   "2100-01-01T00:00:00Z",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create challenge returned %d", rec.Code)
		}
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		challengeID := uuid.MustParse(created.ID)
		member := uuid.New()
		f.challengeRepo.Enroll(challengeID, member)

		rec = f.do(t, http.MethodGet, "/api/users/"+member.String()+"/challenges/active", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].ID != created.ID {
			t.Errorf("unexpected challenge list: %+v", resp)
		}

		rec = f.do(t, http.MethodGet, "/api/users/"+uuid.NewString()+"/challenges/active", nil)
		if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
			t.Errorf("expected an empty list for a stranger, got %d %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGetChallenge(t *testing.T) {
	t.Run("returns 404 for an unknown challenge", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodGet, "/api/challenges/"+uuid.NewString(), nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns the challenge with its participants", func(t *testing.T) {
		f := newAPIFixture(t)
		challengeID := f.createChallenge(t)
		if rec := f.do(t, http.MethodPost, "/api/challenges/"+challengeID+"/participants", gin.H{
			"user_id": uuid.NewString(),
		}); rec.Code != http.StatusCreated {
			t.Fatalf("enrollment returned %d", rec.Code)
		}

		rec := f.do(t, http.MethodGet, "/api/challenges/"+challengeID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			ID           string `json:"id"`
			Participants []any  `json:"participants"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ID != challengeID {
			t.Errorf("id mismatch: got %q, want %q", resp.ID, challengeID)
		}
		if len(resp.Participants) != 1 {
			t.Errorf("expected 1 participant, got %d", len(resp.Participants))
		}
	})
}
