package cart

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddIncrements(t *testing.T) {
	var c Cart
	assert.True(t, c.IsEmpty())

	c.Add(1)
	c.Add(1)
	c.Add(7)

	assert.Equal(t, 2, c.Quantity(1))
	assert.Equal(t, 1, c.Quantity(7))
	assert.Equal(t, 0, c.Quantity(3))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []uint{1, 7}, c.IDs())
}

func TestCart_ItemsIsCopy(t *testing.T) {
	var c Cart
	c.Add(1)

	items := c.Items()
	items[1] = 99

	assert.Equal(t, 1, c.Quantity(1))
}

func TestCart_Clear(t *testing.T) {
	var c Cart
	c.Add(1)
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c)
}

func TestCart_JSONKeysAreProductIDs(t *testing.T) {
	var c Cart
	c.Add(4)
	c.Add(4)

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"4":2}`, string(raw))

	var back Cart
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 2, back.Quantity(4))
}
