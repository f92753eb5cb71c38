package render

// User-facing bot messages.
const (
	MsgSearching       = "🔍 Searching Government Orders..."
	MsgSearchComplete  = "Search complete."
	MsgSearchFailedFmt = "Search failed: %v"

	MsgRateLimited = "⏳ Too many requests. Please wait a moment and try again."
	MsgPanic       = "❌ Something went wrong. Please try again or send /start."
)
