package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndIncrement(t *testing.T) {
	c := New()

	c.Add("Mug", 50)
	c.Add("Mug", 50)
	c.Add("Sticker", 10)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 110.0, c.Total())

	snapshot := c.Snapshot()
	assert.Equal(t, "Mug", snapshot[0].Name)
	assert.Equal(t, 2, snapshot[0].Quantity)
	assert.Equal(t, "Sticker", snapshot[1].Name)
	assert.Equal(t, 1, snapshot[1].Quantity)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add("Mug", 50)
	c.Add("Mug", 50)

	c.Remove("Mug")
	assert.Equal(t, 0, c.Len())

	// removing an absent entry is a no-op
	c.Remove("Mug")
	assert.Equal(t, 0, c.Len())
}

func TestChangeQuantity(t *testing.T) {
	c := New()
	c.Add("Mug", 50)

	c.ChangeQuantity("Mug", 2)
	assert.Equal(t, 150.0, c.Total())

	c.ChangeQuantity("Mug", -1)
	assert.Equal(t, 100.0, c.Total())

	// dropping to zero removes the entry
	c.ChangeQuantity("Mug", -2)
	assert.Equal(t, 0, c.Len())

	c.ChangeQuantity("Ghost", 1)
	assert.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add("Mug", 50)
	c.Add("Sticker", 10)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0.0, c.Total())
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New()
	c.Add("Mug", 50)

	snapshot := c.Snapshot()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, c.Snapshot()[0].Quantity)
}

func TestItemsPayload(t *testing.T) {
	c := New()
	c.Add("Sticker", 10)
	c.Add("Mug", 50)
	c.Add("Mug", 50)

	items := c.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "Mug", items[0].Name)
	assert.Equal(t, 50.0, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCheckoutReady(t *testing.T) {
	c := New()
	form := CheckoutForm{
		FullName:    "Jane Customer",
		Email:       "jane@example.com",
		Phone:       "0123456789",
		CollectDate: "2026-09-15",
	}

	// empty cart blocks checkout even with a complete form
	assert.False(t, c.CheckoutReady(form))

	c.Add("Mug", 50)
	assert.True(t, c.CheckoutReady(form))

	// every form field is required
	for _, incomplete := range []CheckoutForm{
		{Email: form.Email, Phone: form.Phone, CollectDate: form.CollectDate},
		{FullName: form.FullName, Phone: form.Phone, CollectDate: form.CollectDate},
		{FullName: form.FullName, Email: form.Email, CollectDate: form.CollectDate},
		{FullName: form.FullName, Email: form.Email, Phone: form.Phone},
	} {
		assert.False(t, c.CheckoutReady(incomplete))
	}

	// whitespace-only fields do not count
	blank := form
	blank.Phone = "   "
	assert.False(t, c.CheckoutReady(blank))
}
