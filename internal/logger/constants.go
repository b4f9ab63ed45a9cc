package logger

// Output formats accepted by Options.Format
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyContestID   = "contest_id"
)
