package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	c, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", c.Server.Addr)
	assert.Equal(t, "mongo", c.Storage.Driver)
	assert.Equal(t, "wikisummary", c.Storage.MongoDBName)
	assert.Equal(t, "http", c.Fetch.Mode)
	assert.Equal(t, 15*time.Second, c.FetchTimeout())
	assert.Equal(t, "selector", c.Extractor.Strategy)
	assert.Equal(t, []string{"#mw-content-text"}, c.Extractor.ContentSelectors)
	assert.Equal(t, "huggingface", c.LLM.Provider)
	assert.Equal(t, "facebook/bart-large-cnn", c.LLM.ModelName)
	assert.Equal(t, 60*time.Second, c.LLMTimeout())
	assert.Equal(t, 1000, c.Summarizer.ChunkSize)
	assert.Equal(t, 100, c.Summarizer.ChunkOverlap)
	assert.Equal(t, 10, c.Summarizer.MaxChunks)
	assert.Equal(t, 5, c.Summarizer.MaxRefinements)
	assert.Equal(t, 100, c.Summarizer.DefaultWordLimit)
	assert.False(t, c.Summarizer.StrictLength)
}

func TestParseProviderDefaultModel(t *testing.T) {
	c, err := Parse([]byte("llm:\n  provider: openai\n"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", c.LLM.ModelName)
}

func TestParseMongoURIFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://env:27017")

	c, err := Parse([]byte("storage:\n  mongo_uri: mongodb://file:27017\n"))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://env:27017", c.Storage.MongoURI)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"storage driver": "storage:\n  driver: redis\n",
		"fetch mode":     "fetch:\n  mode: carrier-pigeon\n",
		"overlap":        "summarizer:\n  chunk_size: 100\n  chunk_overlap: 100\n",
		"bad yaml":       "server: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRepositoryConfig(t *testing.T) {
	base := GetBasePath()
	if base == "" {
		t.Skip("config.yaml not found")
	}

	c, err := Load(filepath.Join(base, CONFIG_FILE))
	require.NoError(t, err)
	assert.NotEmpty(t, c.WarmupURLs)
	assert.Contains(t, c.Extractor.StripSelectors, "sup.reference")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
