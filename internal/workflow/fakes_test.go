// ABOUTME: Test fakes for the pipeline's provider interfaces
// ABOUTME: Shared across stage and engine tests

package workflow

import (
	"context"

	"github.com/villard/rag-gateway/internal/models"
)

type fakeClassifier struct {
	label string
	err   error
	calls int
}

func (f *fakeClassifier) Classify(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.label, f.err
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.vec == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return f.vec, nil
}

// fakeStore routes searches by collection key, mirroring the per-tenant
// partitioning of the real store
type fakeStore struct {
	collections   map[string][]models.Document
	gotCollection string
	gotK          int
	err           error
}

func (f *fakeStore) Search(ctx context.Context, collection string, vector []float32, k int) ([]models.Document, error) {
	f.gotCollection = collection
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	docs := f.collections[collection]
	if docs == nil {
		return []models.Document{}, nil
	}
	if len(docs) > k {
		docs = docs[:k]
	}
	return docs, nil
}

type fakeReranker struct {
	out      []models.Document
	err      error
	called   bool
	gotQuery string
	gotTopN  int
}

func (f *fakeReranker) Rerank(ctx context.Context, query string, docs []models.Document, topN int) ([]models.Document, error) {
	f.called = true
	f.gotQuery = query
	f.gotTopN = topN
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	if len(docs) > topN {
		docs = docs[:topN]
	}
	return docs, nil
}

type fakeGenerator struct {
	answer     string
	err        error
	gotSystem  string
	gotHistory []models.Message
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt string, history []models.Message) (string, error) {
	f.gotSystem = systemPrompt
	f.gotHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
