package cli

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/adapter"
)

func TestNewProgress(t *testing.T) {
	t.Run("disabled by flag", func(t *testing.T) {
		cfg := config{noSpinner: true}
		gt.Equal(t, cfg.newProgress(&bytes.Buffer{}), adapter.NopProgress())
	})

	t.Run("spinner draws on the given writer only", func(t *testing.T) {
		var errOut bytes.Buffer
		cfg := config{}
		p := cfg.newProgress(&errOut)
		gt.NotEqual(t, p, adapter.NopProgress())

		p.Start("Thinking")
		p.Stop()
		gt.Equal(t, errOut.Len(), 0)
	})
}

func TestNewRepository(t *testing.T) {
	t.Run("kb path is required", func(t *testing.T) {
		cfg := config{}
		_, err := cfg.newRepository(t.Context())
		gt.Error(t, err)
	})

	t.Run("local file", func(t *testing.T) {
		cfg := config{kbPath: t.TempDir() + "/kb.yaml"}
		repo, err := cfg.newRepository(t.Context())
		gt.NoError(t, err)

		_, found, err := repo.Load(t.Context())
		gt.NoError(t, err)
		gt.False(t, found)
	})
}
