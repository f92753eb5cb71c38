package entity

// MetadataRecord is one spreadsheet row describing a Government Order PDF,
// keyed by Filename. All other fields are optional.
type MetadataRecord struct {
	Filename   string
	Year       *int
	GONumber   string
	Department string
	Abstract   string
	Date       string
}

// IsZero reports whether the record carries no optional fields.
func (r MetadataRecord) IsZero() bool {
	return r.Year == nil && r.GONumber == "" && r.Department == "" && r.Abstract == "" && r.Date == ""
}

// CustomMetadata is one typed key/value attribute attached to an uploaded
// document. Exactly one of StringValue / NumericValue is set.
type CustomMetadata struct {
	Key          string `json:"key"`
	StringValue  string `json:"stringValue,omitempty"`
	NumericValue *int64 `json:"numericValue,omitempty"`
}

// StoreConfig is the hand-off artifact between the ingestion tool and the
// chat service, persisted as store_config.json.
type StoreConfig struct {
	StoreName   string `json:"store_name"`
	DisplayName string `json:"display_name"`
}
