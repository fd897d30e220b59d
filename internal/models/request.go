package models

// Project and asset payloads arrive as open documents (the schemas allow
// arbitrary extension fields), so those routes bind to plain maps. Only the
// vector-collection wrapper has a fixed request shape.

type AddDocumentsRequest struct {
	Documents []string                 `json:"documents" binding:"required"`
	Metadatas []map[string]interface{} `json:"metadatas,omitempty"`
	IDs       []string                 `json:"ids" binding:"required"`
}

type QueryRequest struct {
	QueryTexts []string `json:"query_texts" binding:"required"`
	NResults   int      `json:"n_results"`
}
