package models

// RawProduct is a marketplace listing.
type RawProduct struct {
	ID          FlexString `json:"id"`
	MongoID     FlexString `json:"_id"`
	Title       FlexString `json:"title"`
	Description FlexString `json:"description"`
	Category    FlexString `json:"category"`
	Price       FlexNumber `json:"price"`
	Status      FlexString `json:"status"`
	SellerID    FlexString `json:"sellerId"`
	CreatedAt   FlexString `json:"createdAt"`
}

// RawCartItem is one line of a buyer's cart.
type RawCartItem struct {
	ID        FlexString `json:"id"`
	MongoID   FlexString `json:"_id"`
	ProductID FlexString `json:"productId"`
	Title     FlexString `json:"title"`
	Price     FlexNumber `json:"price"`
	AddedAt   FlexString `json:"addedAt"`
}

// RawUser is a marketplace account.
type RawUser struct {
	ID        FlexString `json:"id"`
	MongoID   FlexString `json:"_id"`
	Name      FlexString `json:"name"`
	Email     FlexString `json:"email"`
	Phone     FlexString `json:"phone"`
	Role      FlexString `json:"role"`
	Status    FlexString `json:"status"`
	CreatedAt FlexString `json:"createdAt"`
}
