package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

func product(id, name string, price int64) *entity.Product {
	return &entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: "Wearables"}
}

func TestCart_AddDosVecesFusiona(t *testing.T) {
	var c entity.Cart
	p := product("p1", "Scarf", 250)

	c.Add(p)
	c.Add(p)

	require.Len(t, c.Items, 1, "el mismo producto nunca genera dos entradas")
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCart_AddConservaOrden(t *testing.T) {
	var c entity.Cart
	c.Add(product("p1", "Scarf", 250))
	c.Add(product("p2", "Hat", 150))
	c.Add(product("p1", "Scarf", 250))

	require.Len(t, c.Items, 2)
	assert.Equal(t, "p1", c.Items[0].ID)
	assert.Equal(t, "p2", c.Items[1].ID)
}

func TestCart_SetQuantityMenorAUnoNoCambia(t *testing.T) {
	var c entity.Cart
	c.Add(product("p1", "Scarf", 250))
	require.NoError(t, c.SetQuantity("p1", 3))

	for _, n := range []int{0, -1, -50} {
		err := c.SetQuantity("p1", n)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, 3, c.Items[0].Quantity, "n=%d no debe modificar la cantidad", n)
	}
}

func TestCart_TopeDeCantidad(t *testing.T) {
	var c entity.Cart
	p := product("p1", "Scarf", 250)
	require.NoError(t, c.Add(p))

	assert.ErrorIs(t, c.SetQuantity("p1", entity.MaxQuantity+1), domain.ErrInvalidQuantity)
	assert.Equal(t, 1, c.Items[0].Quantity)

	require.NoError(t, c.SetQuantity("p1", entity.MaxQuantity))
	assert.ErrorIs(t, c.Add(p), domain.ErrInvalidQuantity)
	assert.Equal(t, entity.MaxQuantity, c.Count())

	restored := entity.Cart{Items: []entity.CartItem{
		{ID: "p1", Quantity: 900},
		{ID: "p1", Quantity: 900},
		{ID: "p2", Quantity: 5000},
	}}
	restored.Normalize()
	require.Len(t, restored.Items, 2)
	assert.Equal(t, entity.MaxQuantity, restored.Items[0].Quantity)
	assert.Equal(t, entity.MaxQuantity, restored.Items[1].Quantity)
}

func TestCart_SetQuantityIDInexistente(t *testing.T) {
	var c entity.Cart
	assert.ErrorIs(t, c.SetQuantity("nope", 2), domain.ErrNotFound)
}

func TestCart_RemoveLuegoAddReiniciaCantidad(t *testing.T) {
	var c entity.Cart
	p := product("p1", "Scarf", 250)
	c.Add(p)
	require.NoError(t, c.SetQuantity("p1", 7))

	assert.True(t, c.Remove("p1"))
	c.Add(p)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity, "no debe quedar cantidad residual")
}

func TestCart_RemoveInexistente(t *testing.T) {
	var c entity.Cart
	assert.False(t, c.Remove("nope"))
}

func TestCart_TotalEscenarioScarfHat(t *testing.T) {
	var c entity.Cart
	scarf := product("p1", "Scarf", 250)
	c.Add(scarf)
	c.Add(scarf)
	c.Add(product("p2", "Hat", 150))

	assert.True(t, decimal.NewFromInt(650).Equal(c.Total()), "total = %s", c.Total())
	assert.Equal(t, 3, c.Count())
}

func TestCart_TotalEsSumaDeLineas(t *testing.T) {
	var c entity.Cart
	prices := []string{"249.50", "0", "99.99", "1200"}
	for i, raw := range prices {
		c.Add(&entity.Product{ID: string(rune('a' + i)), Name: raw, Price: decimal.RequireFromString(raw)})
		require.NoError(t, c.SetQuantity(string(rune('a'+i)), i+1))
	}

	want := decimal.Zero
	for _, it := range c.Items {
		want = want.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, want.Equal(c.Total()))

	// El total se recalcula: un cambio se refleja de inmediato.
	require.NoError(t, c.SetQuantity("a", 10))
	assert.True(t, want.Add(decimal.RequireFromString("249.50").Mul(decimal.NewFromInt(9))).Equal(c.Total()))
}

func TestCart_VacioTotalCero(t *testing.T) {
	var c entity.Cart
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.Count())
}

func TestCart_Normalize(t *testing.T) {
	c := entity.Cart{Items: []entity.CartItem{
		{ID: "a", Quantity: 2},
		{ID: "", Quantity: 4},
		{ID: "b", Quantity: 0},
		{ID: "a", Quantity: 1},
	}}
	c.Normalize()

	require.Len(t, c.Items, 2)
	assert.Equal(t, "a", c.Items[0].ID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "b", c.Items[1].ID)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestCategories_AllPrimeroSinVacias(t *testing.T) {
	products := []*entity.Product{
		{ID: "3", Category: "Toys"},
		{ID: "2", Category: ""},
		{ID: "1", Category: "Wearables"},
		{ID: "0", Category: "Toys"},
	}
	assert.Equal(t, []string{"All", "Toys", "Wearables"}, entity.Categories(products))
	assert.Equal(t, []string{"All"}, entity.Categories(nil))

	assert.Len(t, entity.FilterByCategory(products, "Toys"), 2)
	assert.Len(t, entity.FilterByCategory(products, "All"), 4)
	assert.Len(t, entity.FilterByCategory(products, ""), 4)
	assert.Empty(t, entity.FilterByCategory(products, "Nope"))
}

func TestNewOrder_Lineas(t *testing.T) {
	var c entity.Cart
	c.Add(product("p1", "Scarf", 250))
	require.NoError(t, c.SetQuantity("p1", 2))
	c.Add(product("p2", "Hat", 150))

	o := entity.NewOrder(c, entity.DeliveryProfile{Name: "Asha"})
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "Scarf", o.Lines[0].ProductName)
	assert.True(t, decimal.NewFromInt(500).Equal(o.Lines[0].LineTotal))
	assert.True(t, decimal.NewFromInt(650).Equal(o.Total))
	assert.Equal(t, "Asha", o.Profile.Name)
}

func TestDeliveryProfile_Complete(t *testing.T) {
	full := entity.DeliveryProfile{Name: "Asha", Phone: "+919876543210", Address: "12 MG Road", Location: "Chennai"}
	assert.True(t, full.Complete())

	for _, p := range []entity.DeliveryProfile{
		{Phone: full.Phone, Address: full.Address, Location: full.Location},
		{Name: full.Name, Address: full.Address, Location: full.Location},
		{Name: full.Name, Phone: full.Phone, Location: full.Location},
		{Name: full.Name, Phone: full.Phone, Address: full.Address, Location: "   "},
	} {
		assert.False(t, p.Complete(), "%+v", p)
	}
}

func TestAuthSession_Current(t *testing.T) {
	assert.Equal(t, entity.AuthStateUnauthenticated, entity.AuthSession{}.Current())
	assert.Equal(t, entity.AuthStateUnauthenticated, entity.AuthSession{State: "bogus"}.Current())
	assert.False(t, entity.AuthSession{State: entity.AuthStateVerified}.Verified(), "sin identidad no está verificada")
	assert.True(t, entity.AuthSession{State: entity.AuthStateVerified, Identity: &entity.Identity{UID: "u"}}.Verified())
}
