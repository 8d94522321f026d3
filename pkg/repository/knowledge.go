package repository

import (
	"context"
	"errors"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/model"
	"gopkg.in/yaml.v3"
)

// yamlRepo stores the knowledge base as a single YAML document
type yamlRepo struct {
	storage adapter.Storage
	key     string
}

// NewYAML creates a KnowledgeRepository that keeps the knowledge base under key
func NewYAML(storage adapter.Storage, key string) KnowledgeRepository {
	return &yamlRepo{
		storage: storage,
		key:     key,
	}
}

func (r *yamlRepo) Load(ctx context.Context) (model.KnowledgeBase, bool, error) {
	reader, err := r.storage.Get(ctx, r.key)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get knowledge base from storage")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read knowledge base", goerr.V("key", r.key))
	}

	// plain map keeps nested entries as map[string]any, same as a seeded base
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false, goerr.Wrap(err, "failed to unmarshal knowledge base", goerr.V("key", r.key))
	}
	if m == nil {
		m = map[string]any{}
	}

	return model.KnowledgeBase(m), true, nil
}

func (r *yamlRepo) Save(ctx context.Context, kb model.KnowledgeBase) error {
	data, err := yaml.Marshal(kb)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal knowledge base")
	}

	writer, err := r.storage.Put(ctx, r.key)
	if err != nil {
		return goerr.Wrap(err, "failed to create storage writer", goerr.V("key", r.key))
	}

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return goerr.Wrap(err, "failed to write knowledge base to storage")
	}

	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage writer")
	}

	return nil
}
