package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_ImageFor(t *testing.T) {
	p := &Product{
		Image: "main.jpg",
		ColorVariants: []ColorVariant{
			{Token: "t1", Name: "Black", Image: "black.jpg"},
			{Token: "t2", Name: "White", Image: "white.jpg"},
		},
	}

	assert.Equal(t, "white.jpg", p.ImageFor("White"))
	assert.Equal(t, "black.jpg", p.ImageFor("Unknown"))
	assert.Equal(t, "black.jpg", p.ImageFor(""))
}

func TestProduct_ImageFor_FallsBackToMainImage(t *testing.T) {
	p := &Product{Image: "main.jpg"}

	assert.Equal(t, "main.jpg", p.ImageFor("Black"))
}

func TestProduct_ImageFor_EmptyWhenNoPhotos(t *testing.T) {
	p := &Product{Category: CategoryCases}

	assert.Empty(t, p.ImageFor(""))
	assert.Equal(t, "📱", p.Category.Glyph())
}

func TestProduct_ColorNames_PrefersVariants(t *testing.T) {
	p := &Product{
		Colors:        []string{"Rosa", "Azul"},
		ColorVariants: []ColorVariant{{Name: "Black"}, {Name: "White"}},
	}

	assert.Equal(t, []string{"Black", "White"}, p.ColorNames())
}

func TestProduct_ColorNames_LegacyColors(t *testing.T) {
	p := &Product{Colors: []string{"Rosa", "Azul"}}

	assert.Equal(t, []string{"Rosa", "Azul"}, p.ColorNames())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryCases))
	assert.False(t, ValidCategory(CategoryAll))
	assert.False(t, ValidCategory("garrafas"))
}

func TestValidModel(t *testing.T) {
	assert.True(t, ValidModel("all"))
	assert.True(t, ValidModel("16-pro-max"))
	assert.False(t, ValidModel("17"))
}

func TestValidTag(t *testing.T) {
	assert.True(t, ValidTag(""))
	assert.True(t, ValidTag("Mais Pedida"))
	assert.False(t, ValidTag("Imperdível"))
}

func TestProductID_DraftAndPersisted(t *testing.T) {
	draft := NewDraftID()
	assert.True(t, draft.IsDraft())
	assert.False(t, draft.IsZero())

	persisted := PersistedID("66f0a1b2c3d4e5f6a7b8c9d0")
	assert.False(t, persisted.IsDraft())
	assert.Equal(t, "66f0a1b2c3d4e5f6a7b8c9d0", persisted.String())
}

func TestProductID_JSONRoundTrip(t *testing.T) {
	draft := NewDraftID()

	data, err := json.Marshal(draft)
	require.NoError(t, err)

	var decoded ProductID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.IsDraft())
	assert.True(t, draft.Equal(decoded))

	var persisted ProductID
	require.NoError(t, json.Unmarshal([]byte(`"abc123"`), &persisted))
	assert.False(t, persisted.IsDraft())
}
