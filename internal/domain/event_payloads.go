package domain

// ContestCreatedPayload is the event payload for contest.created events
type ContestCreatedPayload struct {
	ContestID     string `json:"contest_id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	StartsAt      int64  `json:"starts_at"`
	EndsAt        int64  `json:"ends_at"`
}

// ContestStateChangedPayload is the event payload for contest.state_changed events
type ContestStateChangedPayload struct {
	ContestID string       `json:"contest_id"`
	From      ContestState `json:"from"`
	To        ContestState `json:"to"`
	Timestamp int64        `json:"timestamp"`
}

// ContestFinalizedPayload is the event payload for contest.finalized events
type ContestFinalizedPayload struct {
	ContestID        string `json:"contest_id"`
	ParticipantCount int    `json:"participant_count"`
	PayoutCount      int    `json:"payout_count"`
	Total            string `json:"total"`
	Currency         string `json:"currency"`
	Timestamp        int64  `json:"timestamp"`
}

// PredictionSubmittedPayload is the event payload for prediction.submitted events
type PredictionSubmittedPayload struct {
	ContestID     string `json:"contest_id"`
	QuestionID    string `json:"question_id"`
	ParticipantID string `json:"participant_id"`
	Confidence    int    `json:"confidence"`
	IsLate        bool   `json:"is_late"`
	Replaced      bool   `json:"replaced"`
	Timestamp     int64  `json:"timestamp"`
}

// QuestionResolvedPayload is the event payload for question.resolved events
type QuestionResolvedPayload struct {
	ContestID  string `json:"contest_id"`
	QuestionID string `json:"question_id"`
	Ordinal    int    `json:"ordinal"`
	Outcome    string `json:"outcome"`
	Timestamp  int64  `json:"timestamp"`
}

// QuestionScoredPayload is the event payload for question.scored events
type QuestionScoredPayload struct {
	ContestID       string `json:"contest_id"`
	QuestionID      string `json:"question_id"`
	Ordinal         int    `json:"ordinal"`
	SubmissionCount int    `json:"submission_count"`
	Timestamp       int64  `json:"timestamp"`
}
