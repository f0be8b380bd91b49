package model

import "time"

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusApproved, OrderStatusCanceled, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Order doubles as the cart while its status is created.
// At most one created order exists per customer and per session key;
// the partial unique indexes are created in db.Migrate.
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Status     OrderStatus `gorm:"type:varchar(15);not null;default:'created';index" json:"status"`
	CustomerID *int64      `gorm:"index" json:"customer_id"`
	SessionKey *string     `gorm:"type:varchar(32);index" json:"-"`

	// delivery details, filled on checkout
	Name                *string    `gorm:"type:varchar(64)" json:"name"`
	PhoneNumber         *string    `gorm:"type:varchar(32)" json:"phone_number"`
	Email               *string    `gorm:"type:varchar(64)" json:"email"`
	Address             *string    `gorm:"type:varchar(255)" json:"address"`
	RequestedDeliveryAt *time.Time `json:"requested_delivery_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	LineItems []LineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"line_items,omitempty"`
}

// Owner reconstructs the cart owner stored on the row.
func (o Order) Owner() (Owner, bool) {
	if o.CustomerID != nil {
		return CustomerOwner(*o.CustomerID), true
	}
	if o.SessionKey != nil && *o.SessionKey != "" {
		return SessionOwner(*o.SessionKey), true
	}
	return Owner{}, false
}
