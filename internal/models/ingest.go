package models

// Upload is a named document submitted for ingestion. Name is used only for its extension.
type Upload struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Files   int      `json:"files"`
	Skipped []string `json:"skipped,omitempty"`
	Chunks  int      `json:"chunks"`
	Records []int64  `json:"records,omitempty"`
}
