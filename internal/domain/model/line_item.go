package model

import "time"

// LineItem is one cart row. Unique per (order, dish); never stored with quantity 0.
type LineItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;uniqueIndex:ux_line_items_order_dish" json:"order_id"`
	DishID    int64     `gorm:"not null;uniqueIndex:ux_line_items_order_dish;index" json:"dish_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Dish Dish `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"dish"`
}
