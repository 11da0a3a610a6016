package message_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/message"
)

var tmpl = message.Template{Icon: "🧶", ShopName: "Vels Grace Crochet", Currency: "₹"}

func scarfHatOrder(t *testing.T) entity.Order {
	t.Helper()
	var c entity.Cart
	c.Add(&entity.Product{ID: "p1", Name: "Scarf", Price: decimal.NewFromInt(250)})
	require.NoError(t, c.SetQuantity("p1", 2))
	c.Add(&entity.Product{ID: "p2", Name: "Hat", Price: decimal.NewFromInt(150)})
	return entity.NewOrder(c, entity.DeliveryProfile{
		Name:     "Asha",
		Phone:    "+919876543210",
		Address:  "12 MG Road",
		Location: "Chennai",
	})
}

func TestRender_EscenarioScarfHat(t *testing.T) {
	msg := message.Render(tmpl, scarfHatOrder(t))

	assert.Contains(t, msg, "- Scarf x 2 = ₹500")
	assert.Contains(t, msg, "- Hat x 1 = ₹150")
	assert.Contains(t, msg, "*Total Amount: ₹650*")
}

func TestRender_PlantillaExacta(t *testing.T) {
	want := "🧶 *New Order from Vels Grace Crochet*\n\n" +
		"*Customer Details:*\n" +
		"Name: Asha\n" +
		"Phone: +919876543210\n" +
		"Address: 12 MG Road\n" +
		"Location: Chennai\n\n" +
		"*Order Details:*\n" +
		"- Scarf x 2 = ₹500\n" +
		"- Hat x 1 = ₹150\n\n" +
		"*Total Amount: ₹650*"

	assert.Equal(t, want, message.Render(tmpl, scarfHatOrder(t)))
}

func TestAmount_SinDecimalesForzados(t *testing.T) {
	assert.Equal(t, "₹249.5", message.Amount("₹", decimal.RequireFromString("249.50")))
	assert.Equal(t, "₹0", message.Amount("₹", decimal.Zero))
}

func TestEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"a b":         "a%20b",
		"x+y":         "x%2By",
		"*Total*":     "*Total*",
		"it's (ok)!":  "it's%20(ok)!",
		"a&b=c?d/e#f": "a%26b%3Dc%3Fd%2Fe%23f",
		"₹":           "%E2%82%B9",
		"line\nnext":  "line%0Anext",
		"-_.~":        "-_.~",
	}
	for in, want := range cases {
		assert.Equal(t, want, message.EncodeURIComponent(in), "entrada %q", in)
	}
}

func TestDeepLink_RoundTrip(t *testing.T) {
	msg := message.Render(tmpl, scarfHatOrder(t))
	link := message.DeepLink("wa.me", "919876543210", msg)

	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	assert.NotContains(t, link, "+", "los espacios deben ir como %20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, msg, u.Query().Get("text"))
}
