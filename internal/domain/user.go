package domain

// CartLine is one (product, quantity) pair inside a user's cart.
// Product ids within a cart are unique; the service layer enforces that,
// Mongo does not.
type CartLine struct {
	ProductID string `bson:"productId" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type Cart struct {
	Products []CartLine `bson:"products" json:"products"`
	CouponID string     `bson:"coupon,omitempty" json:"coupon,omitempty"`
}

type User struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	Name string `bson:"name" json:"name"`
	Cart Cart   `bson:"cart" json:"cart"`
}

// HasProduct reports whether the cart already holds a line for productID.
func (c Cart) HasProduct(productID string) bool {
	for _, line := range c.Products {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the cart's product ids in line order.
func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Products))
	for _, line := range c.Products {
		ids = append(ids, line.ProductID)
	}
	return ids
}
