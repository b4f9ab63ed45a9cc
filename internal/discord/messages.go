package discord

// Friendly message constants for Discord responses
const (
	// Submissions
	MsgDeadlinePassed   = "⏰ **Too Late!**\nThe deadline for that question has passed."
	MsgSubmissionLocked = "🔒 **Locked**\nThat question has already been scored."
	MsgInvalidChoice    = "❓ **Unknown Choice**\nUse one of the option IDs listed by `/contest`."
	MsgContestNotOpen   = "⏳ **Not Open**\nThe contest isn't accepting predictions right now."

	// Contests
	MsgContestCancelled = "🚫 **Cancelled**\nThis contest was cancelled. No prizes will be paid."
	MsgContestNotFound  = "❓ **Contest Not Found**\nMaybe check the ID?"
	MsgQuestionNotFound = "❓ **Question Not Found**\nUse `/contest` to see the question numbers."
	MsgResultPending    = "⏳ **Still Running**\nResults are published once every question is settled."

	MsgServiceUnavailable = "🛠️ The contest service is unavailable. Try again in a minute."
	MsgGenericError       = "❌ Something went wrong."

	MsgNoContests     = "No contests found."
	MsgNoStandings    = "Nobody has made a prediction yet."
	MsgNoHistory      = "You haven't made any predictions in this contest."
	MsgNoPayouts      = "No prizes were paid."
	EmbedFooter       = "Prediction Contest"
	OptionContest     = "contest"
	OptionQuestion    = "question"
	OptionChoice      = "choice"
	OptionConfidence  = "confidence"
	OptionState       = "state"
	MaxAutocomplete   = 25
	MaxStandingsShown = 15
)

// Ping replies
const (
	MsgPong        = "🏓 Pong! The contest API answered in %s."
	MsgPongAPIDown = "🏓 Pong! The contest API isn't answering right now."
)

const (
	headerAPIKey   = "X-API-Key"
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// Embed colors
const (
	ColorInfo    = 0x3498DB
	ColorSuccess = 0x2ECC71
	ColorGold    = 0xF1C40F
)
