package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModel(t *testing.T) {
	t.Run("default index selects first entry", func(t *testing.T) {
		model, err := resolveModel(summarizeModels, 0)
		require.NoError(t, err)
		assert.Equal(t, "facebook/bart-large-cnn", model.ID)
	})

	t.Run("last valid index", func(t *testing.T) {
		model, err := resolveModel(imageModels, len(imageModels)-1)
		require.NoError(t, err)
		assert.Equal(t, familyGemini, model.Family)
	})

	t.Run("negative index rejected", func(t *testing.T) {
		_, err := resolveModel(summarizeModels, -1)
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("out of range index rejected", func(t *testing.T) {
		_, err := resolveModel(summarizeModels, len(summarizeModels))
		assert.ErrorIs(t, err, ErrUnknownModel)
	})
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()

	require.Len(t, catalog["summarize"], len(summarizeModels))
	require.Len(t, catalog["generate"], len(imageModels))

	assert.Equal(t, 0, catalog["summarize"][0].Index)
	assert.Equal(t, "facebook/bart-large-cnn", catalog["summarize"][0].Model)
	assert.Equal(t, "huggingface", catalog["summarize"][0].Provider)
	assert.Equal(t, "gemini", catalog["generate"][2].Provider)
}
