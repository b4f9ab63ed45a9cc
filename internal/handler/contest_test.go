package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/ledger"
)

// MockContestService mocks contest.Service
type MockContestService struct {
	mock.Mock
}

func (m *MockContestService) CreateContest(ctx context.Context, cfg domain.ContestConfig) (*domain.Contest, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contest), args.Error(1)
}

func (m *MockContestService) Activate(ctx context.Context, contestID uuid.UUID) error {
	return m.Called(ctx, contestID).Error(0)
}

func (m *MockContestService) Cancel(ctx context.Context, contestID uuid.UUID) error {
	return m.Called(ctx, contestID).Error(0)
}

func (m *MockContestService) Resolve(ctx context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (*domain.ResolutionResult, error) {
	args := m.Called(ctx, questionID, outcome, resolvedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolutionResult), args.Error(1)
}

func (m *MockContestService) CloseWindow(ctx context.Context, contestID uuid.UUID) error {
	return m.Called(ctx, contestID).Error(0)
}

func (m *MockContestService) AdvanceDue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockContestService) GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contest), args.Error(1)
}

func (m *MockContestService) GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PredictionQuestion), args.Error(1)
}

func (m *MockContestService) ListContests(ctx context.Context, state *domain.ContestState, limit int) ([]domain.Contest, error) {
	args := m.Called(ctx, state, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contest), args.Error(1)
}

func (m *MockContestService) GetContestResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContestResult), args.Error(1)
}

// MockLedgerService mocks ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Submit(ctx context.Context, req ledger.SubmitRequest) (*domain.PredictionSubmission, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PredictionSubmission), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error) {
	args := m.Called(ctx, contestID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PredictionSubmission), args.Error(1)
}

// MockLeaderboardService mocks leaderboard.Service
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Recompute(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) Get(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, contestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) Invalidate(ctx context.Context, contestID uuid.UUID) {
	m.Called(ctx, contestID)
}

func (m *MockLeaderboardService) Subscribe(bus event.Bus) {
	m.Called(bus)
}

// MockEventLogService mocks eventlog.Service
type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) ContestTrail(ctx context.Context, contestID string, limit int) ([]eventlog.Entry, error) {
	args := m.Called(ctx, contestID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Entry), args.Error(1)
}

func (m *MockEventLogService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

type contestMocks struct {
	contests *MockContestService
	ledger   *MockLedgerService
	board    *MockLeaderboardService
	events   *MockEventLogService
}

func newTestContestHandler() (*ContestHandler, contestMocks) {
	m := contestMocks{
		contests: &MockContestService{},
		ledger:   &MockLedgerService{},
		board:    &MockLeaderboardService{},
		events:   &MockEventLogService{},
	}
	return NewContestHandler(m.contests, m.ledger, m.board, m.events), m
}

// withURLParams attaches chi route parameters to the request
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHandleCreateContest(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	validConfig := map[string]interface{}{
		"name":      "March Madness",
		"starts_at": start,
		"ends_at":   start.Add(72 * time.Hour),
		"questions": []map[string]interface{}{{
			"ordinal":       1,
			"prompt":        "Who wins game 1?",
			"category":      "basketball",
			"options":       []map[string]string{{"id": "home", "label": "Home"}, {"id": "away", "label": "Away"}},
			"oracle_choice": "home",
		}},
	}

	t.Run("Success", func(t *testing.T) {
		h, m := newTestContestHandler()
		created := &domain.Contest{ID: uuid.New(), Name: "March Madness", State: domain.ContestStatePending}
		m.contests.On("CreateContest", mock.Anything, mock.MatchedBy(func(cfg domain.ContestConfig) bool {
			return cfg.Name == "March Madness" && len(cfg.Questions) == 1
		})).Return(created, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contests", jsonBody(t, validConfig))
		w := httptest.NewRecorder()
		h.HandleCreateContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), created.ID.String())
		m.contests.AssertExpectations(t)
	})

	t.Run("Missing Name", func(t *testing.T) {
		h, m := newTestContestHandler()
		bad := map[string]interface{}{
			"starts_at": start,
			"ends_at":   start.Add(time.Hour),
			"questions": validConfig["questions"],
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contests", jsonBody(t, bad))
		w := httptest.NewRecorder()
		h.HandleCreateContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"This field is required"`)
		m.contests.AssertNotCalled(t, "CreateContest", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Config From Service", func(t *testing.T) {
		h, m := newTestContestHandler()
		m.contests.On("CreateContest", mock.Anything, mock.Anything).
			Return(nil, domain.ErrInvalidContestConfig)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/contests", jsonBody(t, validConfig))
		w := httptest.NewRecorder()
		h.HandleCreateContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		h, _ := newTestContestHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contests", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		h.HandleCreateContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})
}

func TestHandleListContests(t *testing.T) {
	t.Run("Filter By State", func(t *testing.T) {
		h, m := newTestContestHandler()
		active := domain.ContestStateActive
		m.contests.On("ListContests", mock.Anything, &active, 10).
			Return([]domain.Contest{{ID: uuid.New(), State: active}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?state=active&limit=10", nil)
		w := httptest.NewRecorder()
		h.HandleListContests().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"ACTIVE"`)
		m.contests.AssertExpectations(t)
	})

	t.Run("Empty List Is Array", func(t *testing.T) {
		h, m := newTestContestHandler()
		m.contests.On("ListContests", mock.Anything, (*domain.ContestState)(nil), 100).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests", nil)
		w := httptest.NewRecorder()
		h.HandleListContests().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("Unknown State", func(t *testing.T) {
		h, _ := newTestContestHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?state=open", nil)
		w := httptest.NewRecorder()
		h.HandleListContests().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidContestState)
	})

	t.Run("Bad Limit", func(t *testing.T) {
		h, _ := newTestContestHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?limit=zero", nil)
		w := httptest.NewRecorder()
		h.HandleListContests().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})
}

func TestHandleGetContest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.contests.On("GetContest", mock.Anything, id).Return(&domain.Contest{ID: id, Name: "Cup"}, nil)
		m.contests.On("GetQuestions", mock.Anything, id).
			Return([]domain.PredictionQuestion{{ID: uuid.New(), ContestID: id, Ordinal: 1, Prompt: "Final?"}}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var detail map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, "Cup", detail["name"])
		assert.Len(t, detail["questions"], 1)
	})

	t.Run("Not Found", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.contests.On("GetContest", mock.Anything, id).Return(nil, domain.ErrContestNotFound)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		m.contests.AssertNotCalled(t, "GetQuestions", mock.Anything, mock.Anything)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		h, _ := newTestContestHandler()
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: "not-a-uuid"})
		w := httptest.NewRecorder()
		h.HandleGetContest().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidContestID)
	})
}

func TestHandleCancelContest(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"Success", nil, http.StatusOK},
		{"Already Finalized", domain.ErrInvalidTransition, http.StatusConflict},
		{"Unknown Contest", domain.ErrContestNotFound, http.StatusNotFound},
		{"Storage Failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestContestHandler()
			id := uuid.New()
			m.contests.On("Cancel", mock.Anything, id).Return(tt.serviceErr)

			req := withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{ParamContestID: id.String()})
			w := httptest.NewRecorder()
			h.HandleCancelContest().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.serviceErr == nil {
				assert.Contains(t, w.Body.String(), MsgContestCancelled)
			}
		})
	}
}

func TestHandleResolve(t *testing.T) {

	t.Run("Uses Supplied Time", func(t *testing.T) {
		h, m := newTestContestHandler()
		qid := uuid.New()
		at := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
		m.contests.On("Resolve", mock.Anything, qid, "home", mock.MatchedBy(at.Equal)).
			Return(&domain.ResolutionResult{QuestionID: qid, QuestionsScored: 1, ContestState: domain.ContestStateActive}, nil)

		body := jsonBody(t, map[string]interface{}{"question_id": qid, "outcome": "home", "resolved_at": at})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/results", body)
		w := httptest.NewRecorder()
		h.HandleResolve().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"questions_scored":1`)
		m.contests.AssertExpectations(t)
	})

	t.Run("Defaults To Now", func(t *testing.T) {
		h, m := newTestContestHandler()
		fixed := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
		h.now = func() time.Time { return fixed }
		qid := uuid.New()
		m.contests.On("Resolve", mock.Anything, qid, "away", mock.MatchedBy(fixed.Equal)).
			Return(&domain.ResolutionResult{QuestionID: qid, Duplicate: true}, nil)

		body := jsonBody(t, map[string]interface{}{"question_id": qid, "outcome": "away"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/results", body)
		w := httptest.NewRecorder()
		h.HandleResolve().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"duplicate":true`)
	})

	t.Run("Missing Outcome", func(t *testing.T) {
		h, _ := newTestContestHandler()
		body := jsonBody(t, map[string]interface{}{"question_id": uuid.New()})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/results", body)
		w := httptest.NewRecorder()
		h.HandleResolve().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"outcome"`)
	})

	t.Run("Unknown Question", func(t *testing.T) {
		h, m := newTestContestHandler()
		m.contests.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrQuestionNotFound)

		body := jsonBody(t, map[string]interface{}{"question_id": uuid.New(), "outcome": "home"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/results", body)
		w := httptest.NewRecorder()
		h.HandleResolve().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleSubmitPrediction(t *testing.T) {

	tests := []struct {
		name           string
		body           map[string]interface{}
		serviceErr     error
		callsService   bool
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]interface{}{"participant_id": "alice", "choice": "home", "confidence": 80},
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Deadline Passed",
			body:           map[string]interface{}{"participant_id": "alice", "choice": "home", "confidence": 80},
			serviceErr:     domain.ErrDeadlinePassed,
			callsService:   true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Invalid Option",
			body:           map[string]interface{}{"participant_id": "alice", "choice": "draw", "confidence": 50},
			serviceErr:     domain.ErrInvalidOption,
			callsService:   true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Confidence Out Of Range",
			body:           map[string]interface{}{"participant_id": "alice", "choice": "home", "confidence": 101},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Participant",
			body:           map[string]interface{}{"choice": "home", "confidence": 10},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestContestHandler()
			qid := uuid.New()
			tt.body["question_id"] = qid

			if tt.callsService {
				var sub *domain.PredictionSubmission
				if tt.serviceErr == nil {
					sub = &domain.PredictionSubmission{ID: uuid.New(), QuestionID: qid, ParticipantID: "alice", Choice: "home"}
				}
				m.ledger.On("Submit", mock.Anything, mock.MatchedBy(func(req ledger.SubmitRequest) bool {
					return req.QuestionID == qid && req.ParticipantID == "alice"
				})).Return(sub, tt.serviceErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", jsonBody(t, tt.body))
			w := httptest.NewRecorder()
			h.HandleSubmitPrediction().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.callsService {
				m.ledger.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandleGetLeaderboard(t *testing.T) {
	h, m := newTestContestHandler()
	id := uuid.New()
	m.board.On("Get", mock.Anything, id).Return([]domain.LeaderboardEntry{
		{Rank: 1, ParticipantID: "bob", TotalScore: 120},
		{Rank: 2, ParticipantID: "alice", TotalScore: 90},
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
	w := httptest.NewRecorder()
	h.HandleGetLeaderboard().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var entries []domain.LeaderboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].ParticipantID)
}

func TestHandleGetResult(t *testing.T) {
	t.Run("Finalized", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.contests.On("GetContestResult", mock.Anything, id).
			Return(&domain.ContestResult{ContestID: id, Currency: "USD"}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetResult().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"currency":"USD"`)
	})

	t.Run("Pending", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.contests.On("GetContestResult", mock.Anything, id).Return(nil, domain.ErrResultPending)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetResult().ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, `{"status":"pending"}`+"\n", w.Body.String())
	})

	t.Run("Cancelled", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.contests.On("GetContestResult", mock.Anything, id).Return(nil, domain.ErrContestCancelled)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetResult().ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	})
}

func TestHandleGetHistory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		score := int64(40)
		m.ledger.On("History", mock.Anything, id, "alice").Return([]domain.PredictionSubmission{
			{ParticipantID: "alice", Choice: "home", Score: &score},
		}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
			ParamContestID:     id.String(),
			ParamParticipantID: "alice",
		})
		w := httptest.NewRecorder()
		h.HandleGetHistory().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"score":40`)
	})

	t.Run("Blank Participant", func(t *testing.T) {
		h, _ := newTestContestHandler()
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
			ParamContestID:     uuid.New().String(),
			ParamParticipantID: " ",
		})
		w := httptest.NewRecorder()
		h.HandleGetHistory().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidParticipantID)
	})
}

func TestHandleGetEvents(t *testing.T) {
	t.Run("Clamps Limit", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.events.On("ContestTrail", mock.Anything, id.String(), MaxEventLimit).
			Return([]eventlog.Entry{{ID: 1, EventType: string(event.ContestCreated)}}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/?limit=5000", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetEvents().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(event.ContestCreated))
		m.events.AssertExpectations(t)
	})

	t.Run("Default Limit", func(t *testing.T) {
		h, m := newTestContestHandler()
		id := uuid.New()
		m.events.On("ContestTrail", mock.Anything, id.String(), DefaultEventLimit).Return(nil, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{ParamContestID: id.String()})
		w := httptest.NewRecorder()
		h.HandleGetEvents().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})
}
