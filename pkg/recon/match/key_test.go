package match

import (
	"testing"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	n := normalize.Default()

	key := KeyOf(models.DataPoint{
		ColumnLevel1: "2020",
		ColumnLevel2: "****",
		RowLevel1:    "(em branco)",
	}, n)

	assert.Equal(t, Key{
		{Name: LevelCol1, Label: "2020"},
		{Name: LevelCol2, Label: "4"},
		{Name: LevelRow1, Label: "Total"},
	}, key)
	assert.Equal(t, "col1=2020|col2=4|row1=Total", key.String())
}

func TestKey_ID(t *testing.T) {
	n := normalize.Default()
	a := KeyOf(models.DataPoint{ColumnLevel1: "Lisboa", RowLevel1: "HOMENS"}, n)
	b := KeyOf(models.DataPoint{ColumnLevel1: "lisboa", RowLevel1: "Homens"}, n)
	c := KeyOf(models.DataPoint{ColumnLevel1: "Lisboa", RowLevel2: "Homens"}, n)

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID(), "level names are part of the key")
	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestKey_Get(t *testing.T) {
	key := Key{{Name: LevelCol1, Label: "2020"}, {Name: LevelRow1, Label: "Norte"}}

	label, ok := key.Get(LevelRow1)
	assert.True(t, ok)
	assert.Equal(t, "Norte", label)

	_, ok = key.Get(LevelCol2)
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Norte", "NORTE"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.9, Similarity("Residentes", "Residente"), 1e-9)
	assert.InDelta(t, 1-1.0/6, Similarity("Região", "Regiao"), 1e-9)
}
