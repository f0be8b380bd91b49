package model

import "github.com/shopspring/decimal"

// Dish is read-only reference data from the cart's point of view.
type Dish struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(64);not null;index" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
	Weight      int64           `gorm:"not null" json:"weight"`
	Image       *string         `gorm:"type:varchar(200)" json:"image"`

	Ingredients []DishIngredient `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

type Ingredient struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(64);not null;index" json:"name"`
}

// dish x ingredient, unique per pair
type DishIngredient struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DishID       int64      `gorm:"not null;uniqueIndex:ux_dish_ingredient" json:"dish_id"`
	IngredientID int64      `gorm:"not null;uniqueIndex:ux_dish_ingredient" json:"ingredient_id"`
	Quantity     int64      `gorm:"not null;default:1" json:"quantity"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
}
