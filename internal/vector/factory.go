package vector

import "fmt"

// RetrieverType names a Retriever implementation.
type RetrieverType string

const (
	// RetrieverExhaustive scores every stored record. Suited to hundreds or low thousands of records.
	RetrieverExhaustive RetrieverType = "exhaustive"
)

// NewRetriever creates a retriever of the specified type. Supported types: "exhaustive" (default).
func NewRetriever(retrieverType string) (Retriever, error) {
	switch RetrieverType(retrieverType) {
	case RetrieverExhaustive, "":
		return NewExhaustiveRetriever(), nil
	default:
		return nil, fmt.Errorf("unknown retriever type: %s (supported: exhaustive)", retrieverType)
	}
}
