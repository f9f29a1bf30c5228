package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductID_UnmarshalNumberOrString(t *testing.T) {
	var fromNumber, fromString Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "name": "Booster"}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"id": "7", "name": "Booster"}`), &fromString))

	assert.Equal(t, ProductID("7"), fromNumber.ID)
	assert.Equal(t, fromNumber.ID, fromString.ID)
	assert.True(t, ProductID("7").Equal(ProductID(" 7 ")))
	assert.False(t, ProductID("7").Equal(ProductID("P7")))

	var fromDecimal Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7.0}`), &fromDecimal))
	assert.Equal(t, ProductID("7"), fromDecimal.ID)
}

func TestProductID_StringSKUsKeepTheirSpelling(t *testing.T) {
	assert.False(t, ParseProductID("1e3").Equal(ParseProductID("1000")))
	assert.False(t, ParseProductID("7.10").Equal(ParseProductID("7.1")))
	assert.Equal(t, ProductID("1e3"), ParseProductID(" 1e3 "))
}

func TestProduct_EffectivePrice(t *testing.T) {
	sale := int64(900)

	p := Product{Price: 1200, SalePrice: &sale}
	assert.Equal(t, int64(1200), p.EffectivePrice(), "sale price ignored unless on sale")

	p.OnSale = true
	assert.Equal(t, int64(900), p.EffectivePrice())
}

func TestProduct_TagListAndWithStock(t *testing.T) {
	p := Product{Tags: "pokemon, booster,,  tcg ", Stock: 5}

	assert.Equal(t, []string{"pokemon", "booster", "tcg"}, p.TagList())

	q := p.WithStock(2)
	assert.Equal(t, 2, q.Stock)
	assert.Equal(t, 5, p.Stock)
}
