package checkout_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/application/cart"
	"github.com/jhoicas/vgc-store/internal/application/checkout"
	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/message"
	"github.com/jhoicas/vgc-store/internal/infrastructure/memory"
	"github.com/jhoicas/vgc-store/internal/infrastructure/messaging"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// recordingDispatcher canal con entrega directa (como la Cloud API).
type recordingDispatcher struct {
	calls []ports.OrderDispatch
	err   error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, o ports.OrderDispatch) (ports.DispatchResult, error) {
	d.calls = append(d.calls, o)
	if d.err != nil {
		return ports.DispatchResult{}, d.err
	}
	return ports.DispatchResult{Delivered: true}, nil
}

// flakyKV memoria con lecturas o borrados que pueden fallar.
type flakyKV struct {
	*memory.KVStore
	readDown   bool
	deleteDown bool
}

func (k *flakyKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if k.readDown {
		return nil, false, errors.New("almacén caído")
	}
	return k.KVStore.Read(ctx, key)
}

func (k *flakyKV) Delete(ctx context.Context, key string) error {
	if k.deleteDown {
		return errors.New("almacén caído")
	}
	return k.KVStore.Delete(ctx, key)
}

type failingProfiles struct {
	*memory.ProfileRepo
	failUpsert bool
}

func (p *failingProfiles) Upsert(ctx context.Context, uid string, profile entity.DeliveryProfile) error {
	if p.failUpsert {
		return errors.New("conexión rechazada")
	}
	return p.ProfileRepo.Upsert(ctx, uid, profile)
}

type fakeRenderer struct {
	order  entity.Order
	header checkout.SummaryHeader
}

func (r *fakeRenderer) RenderOrderSummary(_ context.Context, o entity.Order, h checkout.SummaryHeader) ([]byte, error) {
	r.order, r.header = o, h
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	composer   *checkout.Composer
	carts      *cart.Manager
	kv         *flakyKV
	profiles   *failingProfiles
	dispatcher *recordingDispatcher
	renderer   *fakeRenderer
	returns    *auth.ReturnURLStore
}

func newFixture() *fixture {
	return newFixtureWith(nil)
}

// newFixtureWith usa dispatcher si no es nil; si no, el canal con entrega directa.
func newFixtureWith(dispatcher ports.OrderDispatcher) *fixture {
	kv := &flakyKV{KVStore: memory.NewKVStore()}
	f := &fixture{
		carts:      cart.NewManager(kv, logger.Nop()),
		kv:         kv,
		profiles:   &failingProfiles{ProfileRepo: memory.NewProfileRepository()},
		dispatcher: &recordingDispatcher{},
		renderer:   &fakeRenderer{},
		returns:    auth.NewReturnURLStore(kv, logger.Nop()),
	}
	if dispatcher == nil {
		dispatcher = f.dispatcher
	}
	f.composer = checkout.NewComposer(f.carts, f.profiles, f.returns, dispatcher, f.renderer, checkout.Config{
		Template:      message.Template{Icon: "🧶", ShopName: "Vels Grace Crochet", Currency: "₹"},
		MessagingHost: "wa.me",
		Recipient:     "919876543210",
		CurrencyCode:  "INR",
	}, logger.Nop())
	return f
}

const client = "c1"

var (
	identity = &entity.Identity{UID: "u1", PhoneNumber: "+919876543210"}
	profile  = dto.DeliveryProfileDTO{Name: "Asha", Phone: "+919876543210", Address: "12 MG Road", Location: "Chennai"}
)

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	scarf := &entity.Product{ID: "p1", Name: "Scarf", Price: decimal.NewFromInt(250)}
	_, err := f.carts.Add(ctx, client, scarf)
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, client, scarf)
	require.NoError(t, err)
	_, err = f.carts.Add(ctx, client, &entity.Product{ID: "p2", Name: "Hat", Price: decimal.NewFromInt(150)})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_PrecondicionesSinDespachar(t *testing.T) {
	cases := []struct {
		name     string
		identity *entity.Identity
		fill     bool
		profile  dto.DeliveryProfileDTO
		want     error
	}{
		{"sin identidad", nil, true, profile, domain.ErrAuthRequired},
		{"carrito vacío", identity, false, profile, domain.ErrEmptyCart},
		{"sin nombre", identity, true, dto.DeliveryProfileDTO{Phone: "1", Address: "a", Location: "l"}, domain.ErrIncompleteProfile},
		{"ubicación en blanco", identity, true, dto.DeliveryProfileDTO{Name: "n", Phone: "1", Address: "a", Location: "  "}, domain.ErrIncompleteProfile},
		{"sin identidad y carrito vacío", nil, false, profile, domain.ErrAuthRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			if tc.fill {
				f.fillCart(t)
			}
			_, err := f.composer.Submit(context.Background(), client, tc.identity, tc.profile)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, f.dispatcher.calls, "no se despacha nada")
			if tc.fill {
				assert.Equal(t, 3, f.carts.Load(context.Background(), client).Count(), "el carrito no cambia")
			}
		})
	}
}

func TestSubmit_SinIdentidadGuardaRutaDeRetorno(t *testing.T) {
	f := newFixture()
	f.fillCart(t)

	_, err := f.composer.Submit(context.Background(), client, nil, profile)
	require.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Equal(t, checkout.Route, f.returns.Consume(context.Background(), client))
}

func TestSubmit_EscenarioScarfHat(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.fillCart(t)

	out, err := f.composer.Submit(ctx, client, identity, profile)
	require.NoError(t, err)

	require.Len(t, f.dispatcher.calls, 1)
	sent := f.dispatcher.calls[0]
	assert.Equal(t, out.WhatsAppURL, sent.Link)
	assert.True(t, strings.HasPrefix(sent.Link, "https://wa.me/919876543210?text="))
	assert.Contains(t, sent.Message, "- Scarf x 2 = ₹500")
	assert.Contains(t, sent.Message, "- Hat x 1 = ₹150")
	assert.Contains(t, sent.Message, "*Total Amount: ₹650*")

	u, err := url.Parse(sent.Link)
	require.NoError(t, err)
	assert.Equal(t, sent.Message, u.Query().Get("text"))

	assert.True(t, out.CartCleared)
	assert.False(t, out.PendingConfirmation)
	assert.True(t, f.carts.Load(ctx, client).IsEmpty())
	assert.True(t, decimal.NewFromInt(650).Equal(out.Total))

	stored, err := f.profiles.Get(ctx, identity.UID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Chennai", stored.Location)
}

func TestSubmit_FalloDelPerfilAborta(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.profiles.failUpsert = true

	_, err := f.composer.Submit(context.Background(), client, identity, profile)
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.Empty(t, f.dispatcher.calls)
	assert.False(t, f.carts.Load(context.Background(), client).IsEmpty())
}

func TestSubmit_FalloDelCanalConservaCarrito(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.dispatcher.err = errors.New("503")

	_, err := f.composer.Submit(context.Background(), client, identity, profile)
	assert.ErrorIs(t, err, domain.ErrDispatch)
	assert.Equal(t, 3, f.carts.Load(context.Background(), client).Count())
}

func TestSubmit_ModoEnlaceConservaCarritoHastaConfirmar(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWith(messaging.NewLinkDispatcher(logger.Nop()))
	f.fillCart(t)

	out, err := f.composer.Submit(ctx, client, identity, profile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.WhatsAppURL, "https://wa.me/919876543210?text="))
	assert.True(t, out.PendingConfirmation)
	assert.False(t, out.CartCleared)
	assert.Equal(t, 3, f.carts.Load(ctx, client).Count(), "una ventana bloqueada puede reintentar")

	// reintento tras una ventana bloqueada: mismo enlace
	again, err := f.composer.Submit(ctx, client, identity, profile)
	require.NoError(t, err)
	assert.Equal(t, out.WhatsAppURL, again.WhatsAppURL)

	confirmed, err := f.composer.Confirm(ctx, client, identity)
	require.NoError(t, err)
	assert.True(t, confirmed.CartCleared)
	assert.True(t, f.carts.Load(ctx, client).IsEmpty())

	_, err = f.composer.Confirm(ctx, client, identity)
	assert.NoError(t, err, "confirmar dos veces no es error")
}

func TestConfirm_Errores(t *testing.T) {
	f := newFixture()
	f.fillCart(t)

	_, err := f.composer.Confirm(context.Background(), client, nil)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Equal(t, 3, f.carts.Load(context.Background(), client).Count())

	f.kv.deleteDown = true
	_, err = f.composer.Confirm(context.Background(), client, identity)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestSubmit_FalloAlVaciarTrasEntrega(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.kv.deleteDown = true

	out, err := f.composer.Submit(context.Background(), client, identity, profile)
	require.NoError(t, err, "el pedido ya salió")
	assert.False(t, out.CartCleared)
	assert.Len(t, f.dispatcher.calls, 1)
}

func TestPrecondiciones_AlmacenCaidoNoEsCarritoVacio(t *testing.T) {
	f := newFixture()
	f.fillCart(t)
	f.kv.readDown = true
	ctx := context.Background()

	_, err := f.composer.Submit(ctx, client, identity, profile)
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.NotErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, f.dispatcher.calls)

	_, err = f.composer.Prepare(ctx, client, identity)
	assert.ErrorIs(t, err, domain.ErrStore)

	_, err = f.composer.SummaryPDF(ctx, client, identity)
	assert.ErrorIs(t, err, domain.ErrStore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Prepare / SummaryPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepare_PrellenaTelefono(t *testing.T) {
	f := newFixture()
	f.fillCart(t)

	view, err := f.composer.Prepare(context.Background(), client, identity)
	require.NoError(t, err)
	assert.Equal(t, identity.PhoneNumber, view.Profile.Phone)
	assert.Empty(t, view.Profile.Name)
	assert.Equal(t, 3, view.Cart.Count)
}

func TestPrepare_UsaPerfilGuardado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.fillCart(t)
	require.NoError(t, f.profiles.Upsert(ctx, identity.UID, entity.DeliveryProfile{Name: "Asha", Phone: "+911111111111", Address: "x", Location: "y"}))

	view, err := f.composer.Prepare(ctx, client, identity)
	require.NoError(t, err)
	assert.Equal(t, "Asha", view.Profile.Name)
	assert.Equal(t, "+911111111111", view.Profile.Phone)
}

func TestPrepare_Precondiciones(t *testing.T) {
	f := newFixture()
	_, err := f.composer.Prepare(context.Background(), client, nil)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	_, err = f.composer.Prepare(context.Background(), client, identity)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestSummaryPDF(t *testing.T) {
	f := newFixture()
	f.fillCart(t)

	doc, err := f.composer.SummaryPDF(context.Background(), client, identity)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "INR", f.renderer.header.Currency)
	assert.Len(t, f.renderer.order.Lines, 2)
	assert.Equal(t, 3, f.carts.Load(context.Background(), client).Count(), "solo lectura")
}
