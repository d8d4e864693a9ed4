package models

// RawOrder is a purchase of a digital good.
type RawOrder struct {
	ID             FlexString `json:"id"`
	MongoID        FlexString `json:"_id"`
	ProductTitle   FlexString `json:"productTitle"`
	BuyerEmail     FlexString `json:"buyerEmail"`
	Reference      FlexString `json:"reference"`
	Amount         FlexNumber `json:"amount"`
	Commission     FlexNumber `json:"commission"`
	Status         FlexString `json:"status"`
	DeliveryStatus FlexString `json:"deliveryStatus"`
	BuyerID        FlexString `json:"buyerId"`
	SellerID       FlexString `json:"sellerId"`
	CreatedAt      FlexString `json:"createdAt"`
}

// RawShipment is a logistics portal shipment with its tracking position.
type RawShipment struct {
	ID             FlexString `json:"id"`
	MongoID        FlexString `json:"_id"`
	TrackingNumber FlexString `json:"trackingNumber"`
	Recipient      FlexString `json:"recipient"`
	Status         FlexString `json:"status"`
	CurrentStep    FlexNumber `json:"currentStep"`
	UpdatedAt      FlexString `json:"updatedAt"`
}
