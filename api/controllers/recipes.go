package controllers

import (
	"net/http"

	"github.com/angelmondragon/restaurant-backend/api/responses"
	"github.com/angelmondragon/restaurant-backend/api/validators"
	"github.com/angelmondragon/restaurant-backend/internal/recipes"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type recipePayload struct {
	MenuItemID   types.ID        `json:"menu_item_id"`
	IngredientID types.ID        `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// RecipeList returns the ingredient lines of ?menu_item_id=.
func RecipeList(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuItemID, err := validators.RequireQueryID(r, "menu_item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, err := svc.List(r.Context(), menuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

// RecipeUpsert adds an ingredient to a menu item or replaces its quantity.
func RecipeUpsert(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Upsert(r.Context(), recipes.Input{
			MenuItemID:   int64(payload.MenuItemID),
			IngredientID: int64(payload.IngredientID),
			Quantity:     payload.Quantity,
			Unit:         payload.Unit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, row)
	}
}

func RecipeUpdate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuItemID, ingredientID, err := recipeKey(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload recipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err = svc.Update(r.Context(), recipes.Input{
			MenuItemID:   menuItemID,
			IngredientID: ingredientID,
			Quantity:     payload.Quantity,
			Unit:         payload.Unit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Recipe updated successfully")
	}
}

func RecipeDelete(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuItemID, ingredientID, err := recipeKey(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), menuItemID, ingredientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Recipe deleted successfully")
	}
}

func recipeKey(r *http.Request) (int64, int64, error) {
	menuItemID, err := validators.ParsePathID(r, "menu_item_id")
	if err != nil {
		return 0, 0, err
	}
	ingredientID, err := validators.ParsePathID(r, "ingredient_id")
	if err != nil {
		return 0, 0, err
	}
	return menuItemID, ingredientID, nil
}
