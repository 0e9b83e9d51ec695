package models

// All lists every mapped model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&Lookup{},
		&User{},
		&MenuItem{},
		&Address{},
		&Transaction{},
		&CartItem{},
		&Ingredient{},
		&Recipe{},
		&Vendor{},
		&IngredientInventory{},
	}
}
