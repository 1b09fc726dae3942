package models

import (
	"fmt"
	"strings"
)

// QueryRequest is the body of a "submit query" call.
type QueryRequest struct {
	Query string `json:"query"`
}

// Validate trims the query and rejects empty input.
func (q *QueryRequest) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// QueryResponse is the result of one answered turn.
type QueryResponse struct {
	SessionID string        `json:"session_id"`
	Answer    string        `json:"answer"`
	Matches   []ScoredMatch `json:"matches"`
	History   []ChatMessage `json:"history"`
	QueryTime int64         `json:"query_time_ms"`
}
