package entity

// Part is one piece of a content turn. Only text parts are used here.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a single conversation turn as sent to the model.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// NewTextContent builds a single-part text turn.
func NewTextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// FileSearch scopes retrieval to the named stores.
type FileSearch struct {
	FileSearchStoreNames []string `json:"fileSearchStoreNames"`
}

// Tool is a model tool declaration.
type Tool struct {
	FileSearch *FileSearch `json:"fileSearch,omitempty"`
}

// GenerateContentRequest is the retrieval-augmented generation request.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// RetrievedContext is the provider's reference to a retrieved document chunk.
type RetrievedContext struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
	Text  string `json:"text,omitempty"`
}

// GroundingChunk links generated text back to one retrieved chunk.
type GroundingChunk struct {
	RetrievedContext *RetrievedContext `json:"retrievedContext,omitempty"`
}

// GroundingMetadata carries the citation evidence for a candidate.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content           *Content           `json:"content,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GenerateContentResponse is the provider response to a generation request.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Text returns the concatenated text parts of the first candidate, or the
// empty string when the response carries no usable answer.
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range r.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text
}

// SourceTitles returns the de-duplicated titles of all retrieved-context
// chunks of the first candidate, in first-seen order. A chunk without a title
// is reported as "Unknown source". Missing grounding structure is the valid
// "no citations" case, never an error.
func (r *GenerateContentResponse) SourceTitles() []string {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	grounding := r.Candidates[0].GroundingMetadata
	if grounding == nil {
		return nil
	}

	var titles []string
	seen := make(map[string]bool)
	for _, chunk := range grounding.GroundingChunks {
		if chunk.RetrievedContext == nil {
			continue
		}
		title := chunk.RetrievedContext.Title
		if title == "" {
			title = "Unknown source"
		}
		if !seen[title] {
			seen[title] = true
			titles = append(titles, title)
		}
	}
	return titles
}
