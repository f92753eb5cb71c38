package entity

// Conversation roles as the provider expects them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// MaxTranscriptTurns caps the per-session transcript at the 20 most recent
// turns (10 exchanges); oldest turns are dropped first.
const MaxTranscriptTurns = 20

// Turn is one stored conversation turn.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// AppendTurns appends the given turns and truncates the transcript to the
// newest MaxTranscriptTurns entries.
func AppendTurns(transcript []Turn, turns ...Turn) []Turn {
	transcript = append(transcript, turns...)
	if len(transcript) > MaxTranscriptTurns {
		transcript = transcript[len(transcript)-MaxTranscriptTurns:]
	}
	return transcript
}

// Answer is the typed result of one retrieval-augmented query: the answer
// text plus the de-duplicated source titles backing it.
type Answer struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources,omitempty"`
}
