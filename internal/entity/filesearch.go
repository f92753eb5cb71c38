package entity

// FileSearchStore is the remote searchable collection of uploaded documents.
type FileSearchStore struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// CreateStoreRequest creates a new file search store.
type CreateStoreRequest struct {
	DisplayName string `json:"displayName"`
}

// UploadConfig accompanies a document upload: the display name shown in
// citations plus optional custom metadata for filtering/grounding.
type UploadConfig struct {
	DisplayName    string           `json:"displayName"`
	CustomMetadata []CustomMetadata `json:"customMetadata,omitempty"`
}

// OperationError is the failure payload of a finished operation.
type OperationError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Operation is the provider handle for an asynchronous long-running task,
// here a document upload/indexing job.
type Operation struct {
	Name  string          `json:"name"`
	Done  bool            `json:"done"`
	Error *OperationError `json:"error,omitempty"`
}
