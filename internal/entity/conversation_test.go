package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchanges(n int) []Turn {
	turns := make([]Turn, 0, n*2)
	for i := 0; i < n; i++ {
		turns = append(turns,
			Turn{Role: RoleUser, Text: fmt.Sprintf("question %d", i)},
			Turn{Role: RoleModel, Text: fmt.Sprintf("answer %d", i)},
		)
	}
	return turns
}

func TestAppendTurns(t *testing.T) {
	t.Run("below the cap nothing is dropped", func(t *testing.T) {
		transcript := exchanges(9)
		transcript = AppendTurns(transcript,
			Turn{Role: RoleUser, Text: "question 9"},
			Turn{Role: RoleModel, Text: "answer 9"},
		)

		require.Len(t, transcript, MaxTranscriptTurns)
		assert.Equal(t, "question 0", transcript[0].Text)
		assert.Equal(t, "answer 9", transcript[len(transcript)-1].Text)
	})

	t.Run("oldest turns are dropped first", func(t *testing.T) {
		transcript := exchanges(10)
		transcript = AppendTurns(transcript,
			Turn{Role: RoleUser, Text: "question 10"},
			Turn{Role: RoleModel, Text: "answer 10"},
		)

		require.Len(t, transcript, MaxTranscriptTurns)
		assert.Equal(t, "question 1", transcript[0].Text)
		assert.Equal(t, RoleUser, transcript[0].Role)
		assert.Equal(t, "answer 10", transcript[len(transcript)-1].Text)
	})

	t.Run("empty transcript", func(t *testing.T) {
		transcript := AppendTurns(nil, Turn{Role: RoleUser, Text: "hello"})
		require.Len(t, transcript, 1)
		assert.Equal(t, "hello", transcript[0].Text)
	})
}
