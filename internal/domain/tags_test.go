package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsUnmarshal(t *testing.T) {
	t.Run("native array", func(t *testing.T) {
		var tags Tags
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &tags))
		assert.Equal(t, Tags{"a", "b"}, tags)
	})

	t.Run("JSON-encoded string", func(t *testing.T) {
		var tags Tags
		require.NoError(t, json.Unmarshal([]byte(`"[\"foil\",\"trade\"]"`), &tags))
		assert.Equal(t, Tags{"foil", "trade"}, tags)
	})

	t.Run("empty array", func(t *testing.T) {
		var tags Tags
		require.NoError(t, json.Unmarshal([]byte(`[]`), &tags))
		assert.Empty(t, tags)
	})

	t.Run("string that is not an array", func(t *testing.T) {
		var tags Tags
		assert.Error(t, json.Unmarshal([]byte(`"not json"`), &tags))
	})

	t.Run("number rejected", func(t *testing.T) {
		var tags Tags
		assert.Error(t, json.Unmarshal([]byte(`42`), &tags))
	})
}

func TestItemPatchApply(t *testing.T) {
	item := CollectionItem{Quantity: 1, Condition: "NM", Language: "en"}

	qty := 4
	patch := ItemPatch{Quantity: &qty}
	patch.Apply(&item)

	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, "NM", item.Condition)
	assert.Equal(t, "en", item.Language)
}

func TestItemPatchIsEmpty(t *testing.T) {
	assert.True(t, ItemPatch{}.IsEmpty())

	foil := true
	assert.False(t, ItemPatch{IsFoil: &foil}.IsEmpty())
}
