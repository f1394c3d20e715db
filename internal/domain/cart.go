package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrItemNotFound     = errors.New("product not found in cart")
	ErrQuantityBelowOne = errors.New("quantity cannot be less than 1")
)

// Cart is the per-user cart document. Field names on the wire match the
// documents already stored in the carts collection.
type Cart struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Owner          string             `bson:"email" json:"email"`
	Items          []CartItem         `bson:"cartItems" json:"cartItems"`
	TotalItemCount int                `bson:"totalItems" json:"totalItems"`
	TotalPrice     float64            `bson:"totalPrice" json:"totalPrice"`
	LastModifiedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	Version        int64              `bson:"version" json:"version"`
}

type CartItem struct {
	ProductID       string    `bson:"productId" json:"productId" validate:"required"`
	Name            string    `bson:"name,omitempty" json:"name,omitempty"`
	Image           string    `bson:"image,omitempty" json:"image,omitempty"`
	Quantity        int       `bson:"quantity" json:"quantity" validate:"min=1"`
	DiscountPercent float64   `bson:"discount" json:"discount" validate:"gte=0,lt=100"`
	LineTotal       float64   `bson:"price" json:"price" validate:"gte=0"`
	AddedAt         time.Time `bson:"addedAt" json:"addedAt"`
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem appends the item as a new line and refreshes the aggregates.
func (c *Cart) AddItem(item CartItem, now time.Time) {
	item.LineTotal = RoundMoney(item.LineTotal)
	item.AddedAt = now
	c.Items = append(c.Items, item)
	c.touch(now)
}

// IncreaseQuantity adds one unit to the first line holding productID.
func (c *Cart) IncreaseQuantity(productID string, now time.Time) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items[i] = c.Items[i].withQuantity(c.Items[i].Quantity+1, now)
	c.touch(now)
	return nil
}

// DecreaseQuantity removes one unit from the first line holding productID.
// The cart is left untouched when the line is already at quantity 1.
func (c *Cart) DecreaseQuantity(productID string, now time.Time) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if c.Items[i].Quantity <= 1 {
		return ErrQuantityBelowOne
	}
	c.Items[i] = c.Items[i].withQuantity(c.Items[i].Quantity-1, now)
	c.touch(now)
	return nil
}

// RemoveItem drops every line holding productID. Removing an absent product
// only refreshes the aggregates.
func (c *Cart) RemoveItem(productID string, now time.Time) {
	kept := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.touch(now)
}

func (c *Cart) Clear(now time.Time) {
	c.Items = []CartItem{}
	c.touch(now)
}

// Recalculate derives TotalItemCount and TotalPrice from the item sequence.
func (c *Cart) Recalculate() {
	c.TotalItemCount, c.TotalPrice = Totals(c.Items)
}

func (c *Cart) touch(now time.Time) {
	c.Recalculate()
	c.LastModifiedAt = now
}
