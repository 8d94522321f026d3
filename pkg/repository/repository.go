package repository

import (
	"context"

	"github.com/m-mizutani/horizon/pkg/model"
)

// KnowledgeRepository defines persistence of the knowledge base
type KnowledgeRepository interface {
	// Load returns the stored knowledge base. found is false when nothing
	// has been stored yet.
	Load(ctx context.Context) (kb model.KnowledgeBase, found bool, err error)

	// Save replaces the stored knowledge base
	Save(ctx context.Context, kb model.KnowledgeBase) error
}
