package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "data", s.Corpus.DataDir)
	assert.Equal(t, "qpc-v2-15-lines.db.json", s.Corpus.Layout)
	assert.Empty(t, s.Corpus.Words)
	assert.Empty(t, s.Corpus.Translation)
	assert.False(t, s.Reload.Watch)
	assert.Equal(t, 2*time.Second, s.Reload.MinInterval)
	assert.Equal(t, 10, s.Query.SimilarLimit)
}

func TestCorpusSettings_Path(t *testing.T) {
	c := CorpusSettings{DataDir: "/srv/corpus"}

	assert.Equal(t, "", c.Path(""))
	assert.Equal(t, filepath.Join("/srv/corpus", "a.json"), c.Path("a.json"))
	assert.Equal(t, "/elsewhere/b.json", c.Path("/elsewhere/b.json"))
}

func TestCorpusSettings_FilesSkipsOptional(t *testing.T) {
	c := DefaultSettings().Corpus
	c.DataDir = "d"

	files := c.Files()
	assert.Len(t, files, 4)
	assert.Contains(t, files, filepath.Join("d", "matching-ayah.json"))

	c.Translation = "en.json"
	assert.Len(t, c.Files(), 5)
}
