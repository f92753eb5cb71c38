package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateContentResponse_Text(t *testing.T) {
	t.Run("concatenates parts of first candidate", func(t *testing.T) {
		resp := &GenerateContentResponse{
			Candidates: []Candidate{{
				Content: &Content{Parts: []Part{{Text: "Hello "}, {Text: "world"}}},
			}},
		}
		assert.Equal(t, "Hello world", resp.Text())
	})

	t.Run("no candidates", func(t *testing.T) {
		resp := &GenerateContentResponse{}
		assert.Empty(t, resp.Text())
	})

	t.Run("candidate without content", func(t *testing.T) {
		resp := &GenerateContentResponse{Candidates: []Candidate{{}}}
		assert.Empty(t, resp.Text())
	})

	t.Run("nil response", func(t *testing.T) {
		var resp *GenerateContentResponse
		assert.Empty(t, resp.Text())
	})
}

func TestGenerateContentResponse_SourceTitles(t *testing.T) {
	t.Run("deduplicates in first-seen order", func(t *testing.T) {
		resp := &GenerateContentResponse{
			Candidates: []Candidate{{
				GroundingMetadata: &GroundingMetadata{
					GroundingChunks: []GroundingChunk{
						{RetrievedContext: &RetrievedContext{Title: "go_1.pdf"}},
						{RetrievedContext: &RetrievedContext{Title: "go_2.pdf"}},
						{RetrievedContext: &RetrievedContext{Title: "go_1.pdf"}},
					},
				},
			}},
		}
		assert.Equal(t, []string{"go_1.pdf", "go_2.pdf"}, resp.SourceTitles())
	})

	t.Run("untitled chunk becomes Unknown source", func(t *testing.T) {
		resp := &GenerateContentResponse{
			Candidates: []Candidate{{
				GroundingMetadata: &GroundingMetadata{
					GroundingChunks: []GroundingChunk{
						{RetrievedContext: &RetrievedContext{URI: "files/abc"}},
					},
				},
			}},
		}
		assert.Equal(t, []string{"Unknown source"}, resp.SourceTitles())
	})

	t.Run("missing grounding structure means no citations", func(t *testing.T) {
		assert.Nil(t, (&GenerateContentResponse{}).SourceTitles())
		assert.Nil(t, (&GenerateContentResponse{Candidates: []Candidate{{}}}).SourceTitles())

		resp := &GenerateContentResponse{
			Candidates: []Candidate{{
				GroundingMetadata: &GroundingMetadata{
					GroundingChunks: []GroundingChunk{{}},
				},
			}},
		}
		assert.Nil(t, resp.SourceTitles())
	})
}
