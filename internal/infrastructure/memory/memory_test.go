package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/infrastructure/memory"
)

func TestProductRepo_ListMasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Scarf", "Hat", "Bag"} {
		p := &entity.Product{Name: name, Price: decimal.NewFromInt(100), CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, p))
		require.NotEmpty(t, p.ID, "el almacén asigna el ID")
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Bag", list[0].Name)
	assert.Equal(t, "Scarf", list[2].Name)
}

func TestProductRepo_UpdateYDeleteInexistentes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	assert.ErrorIs(t, repo.Update(ctx, &entity.Product{ID: "nope"}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)

	got, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_UpdateConservaCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &entity.Product{Name: "Scarf", CreatedAt: created}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: p.ID, Name: "Long Scarf"}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long Scarf", got.Name)
	assert.Equal(t, created, got.CreatedAt)
}

func TestKVStore_CopiaDefensiva(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	buf := []byte("abc")
	require.NoError(t, kv.Write(ctx, "k", buf))
	buf[0] = 'x'

	v, ok, err := kv.Read(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(v))

	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, err = kv.Read(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
