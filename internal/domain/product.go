package domain

// Product is read-only from the cart's point of view. Discount > 0 means
// the product carries its own discount and coupons never touch it.
type Product struct {
	ID          string  `bson:"_id,omitempty" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Discount    float64 `bson:"discount" json:"discount"`
	Icon        string  `bson:"icon,omitempty" json:"icon,omitempty"`
	ImageLink   string  `bson:"imageLink,omitempty" json:"imageLink,omitempty"`
}
