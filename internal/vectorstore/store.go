// Package vectorstore wraps an embedded chromem-go database behind the
// collection-oriented REST surface the frontend expects: create and inspect
// collections, add documents, and run similarity queries.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	chromem "github.com/philippgille/chromem-go"
)

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
)

// Service manages named document collections in a persistent chromem-go DB.
type Service struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
}

// New opens (or creates) the vector database at path.
func New(path string) (*Service, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vector db directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db: %w", err)
	}

	return &Service{
		db:    db,
		embed: newHashingEmbedder(),
	}, nil
}

// CreateCollection creates a new, empty collection.
func (s *Service) CreateCollection(name string) error {
	if s.db.GetCollection(name, s.embed) != nil {
		return fmt.Errorf("%w: %s", ErrCollectionExists, name)
	}
	if _, err := s.db.CreateCollection(name, nil, s.embed); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// ListCollections returns the collection names in stable order.
func (s *Service) ListCollections() []string {
	collections := s.db.ListCollections()
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of documents in a collection.
func (s *Service) Count(name string) (int, error) {
	collection := s.db.GetCollection(name, s.embed)
	if collection == nil {
		return 0, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return collection.Count(), nil
}

// AddDocuments adds documents with the given ids (and optional metadata) to
// a collection. Document, id, and metadata counts must line up.
func (s *Service) AddDocuments(ctx context.Context, name string, documents []string, metadatas []map[string]interface{}, ids []string) error {
	collection := s.db.GetCollection(name, s.embed)
	if collection == nil {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	if len(documents) != len(ids) {
		return fmt.Errorf("documents and ids must have the same length")
	}
	if metadatas != nil && len(metadatas) != len(documents) {
		return fmt.Errorf("metadatas must match the number of documents")
	}

	docs := make([]chromem.Document, 0, len(documents))
	for i, content := range documents {
		doc := chromem.Document{
			ID:      ids[i],
			Content: content,
		}
		if metadatas != nil {
			doc.Metadata = stringifyMetadata(metadatas[i])
		}
		docs = append(docs, doc)
	}

	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("failed to add documents to %s: %w", name, err)
	}
	return nil
}

// QueryResult mirrors the chroma REST response shape: one row per query
// text, columns aligned by result rank.
type QueryResult struct {
	IDs       [][]string            `json:"ids"`
	Documents [][]string            `json:"documents"`
	Metadatas [][]map[string]string `json:"metadatas"`
	Distances [][]float32           `json:"distances"`
}

// Query runs a similarity search for each query text.
func (s *Service) Query(ctx context.Context, name string, queryTexts []string, nResults int) (*QueryResult, error) {
	collection := s.db.GetCollection(name, s.embed)
	if collection == nil {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	if nResults <= 0 {
		nResults = 10
	}
	// chromem rejects nResults larger than the collection size.
	if count := collection.Count(); nResults > count {
		nResults = count
	}

	result := &QueryResult{
		IDs:       make([][]string, 0, len(queryTexts)),
		Documents: make([][]string, 0, len(queryTexts)),
		Metadatas: make([][]map[string]string, 0, len(queryTexts)),
		Distances: make([][]float32, 0, len(queryTexts)),
	}

	for _, text := range queryTexts {
		ids := []string{}
		documents := []string{}
		metadatas := []map[string]string{}
		distances := []float32{}

		if nResults > 0 {
			matches, err := collection.Query(ctx, text, nResults, nil, nil)
			if err != nil {
				return nil, fmt.Errorf("query against %s failed: %w", name, err)
			}
			for _, match := range matches {
				ids = append(ids, match.ID)
				documents = append(documents, match.Content)
				metadatas = append(metadatas, match.Metadata)
				distances = append(distances, 1-match.Similarity)
			}
		}

		result.IDs = append(result.IDs, ids)
		result.Documents = append(result.Documents, documents)
		result.Metadatas = append(result.Metadatas, metadatas)
		result.Distances = append(result.Distances, distances)
	}

	return result, nil
}

func stringifyMetadata(metadata map[string]interface{}) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for key, value := range metadata {
		out[key] = fmt.Sprintf("%v", value)
	}
	return out
}
