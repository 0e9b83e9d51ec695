package ingredients

import (
	"context"
	"testing"

	"github.com/angelmondragon/restaurant-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientLifecycle(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t).DB()))
	require.NoError(t, err)
	ctx := context.Background()

	flour, err := svc.Create(ctx, Input{Name: "Flour", Unit: "kg", CostPerUnit: decimal.NewNullDecimal(decimal.RequireFromString("1.20"))})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "Butter", Unit: "kg"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Butter", list[0].Name)
	assert.False(t, list[0].CostPerUnit.Valid)

	note := "all purpose"
	require.NoError(t, svc.Update(ctx, flour.ID, Input{Name: "Flour", Unit: "g", Description: &note}))
	got, err := svc.Get(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "g", got.Unit)
	require.NotNil(t, got.Description)
	assert.Equal(t, note, *got.Description)

	require.NoError(t, svc.Delete(ctx, flour.ID))
	assert.Equal(t, "Ingredient not found", pkgerrors.As(svc.Delete(ctx, flour.ID)).Message())
}

func TestIngredientValidation(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t).DB()))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Input{Name: "Salt"})
	assert.Equal(t, "Name and unit are required", pkgerrors.As(err).Message())

	_, err = svc.Create(context.Background(), Input{Name: "Salt", Unit: "g", CostPerUnit: decimal.NewNullDecimal(decimal.NewFromInt(-1))})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
