package chat

import (
	"fmt"
	"strings"

	"github.com/tnega/gosearch/internal/entity"
)

// FormatCitations renders the "Sources:" block for a list of source titles.
// No titles means no block: the empty string.
func FormatCitations(titles []string) string {
	if len(titles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n---\n**Sources:**\n")
	for i, title := range titles {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(title)
	}
	return b.String()
}

// RenderMessage composes the user-visible message for an answer: the answer
// text with the citation block appended.
func RenderMessage(answer *entity.Answer) string {
	return answer.Text + FormatCitations(answer.Sources)
}

// ErrorMessage composes the user-visible fallback when a query fails. The
// same string is what the transcript records for the failed exchange.
func ErrorMessage(err error) string {
	return fmt.Sprintf("An error occurred: %v", err)
}

func composeAnswer(resp *entity.GenerateContentResponse) *entity.Answer {
	text := resp.Text()
	if text == "" {
		text = fallbackAnswer
	}
	return &entity.Answer{
		Text:    text,
		Sources: resp.SourceTitles(),
	}
}
