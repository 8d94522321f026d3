package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/repository"
)

func TestYAMLRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := repository.NewYAML(adapter.NewFileStorage(dir), "horizon_knowledge.yaml")

	t.Run("load before save", func(t *testing.T) {
		kb, found, err := repo.Load(ctx)
		gt.NoError(t, err)
		gt.False(t, found)
		gt.V(t, len(kb)).Equal(0)
	})

	t.Run("save then load", func(t *testing.T) {
		now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
		kb := model.NewKnowledgeBase(model.Persona{Name: "HorizonAI", Version: "1.4 Nexus"}, now)
		kb["rust"] = map[string]any{"asked": 2}
		gt.NoError(t, repo.Save(ctx, kb))

		data, err := os.ReadFile(filepath.Join(dir, "horizon_knowledge.yaml"))
		gt.NoError(t, err)
		gt.S(t, string(data)).Contains("name: HorizonAI")
		gt.S(t, string(data)).Contains("2026-10-14")

		loaded, found, err := repo.Load(ctx)
		gt.NoError(t, err)
		gt.True(t, found)
		gt.Map(t, map[string]any(loaded)).HasKey(model.SelfKey)
		gt.Map(t, map[string]any(loaded)).HasKey("rust")

		self, ok := loaded[model.SelfKey].(map[string]any)
		gt.True(t, ok)
		gt.Equal(t, self["version"], any("1.4 Nexus"))

		rust, ok := loaded["rust"].(map[string]any)
		gt.True(t, ok)
		gt.Equal(t, rust["asked"], any(2))
	})

	t.Run("empty file", func(t *testing.T) {
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o644))
		empty := repository.NewYAML(adapter.NewFileStorage(dir), "empty.yaml")

		kb, found, err := empty.Load(ctx)
		gt.NoError(t, err)
		gt.True(t, found)
		gt.True(t, kb != nil)
		gt.Equal(t, len(kb), 0)
	})

	t.Run("corrupted file", func(t *testing.T) {
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("self: [unterminated"), 0o644))
		broken := repository.NewYAML(adapter.NewFileStorage(dir), "broken.yaml")

		_, _, err := broken.Load(ctx)
		gt.Error(t, err)
	})
}
