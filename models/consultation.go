package models

import "time"

type ConsultationRequest struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone" json:"phone"`
	Message       string    `bson:"message" json:"message"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

func (c ConsultationRequest) IsPending() bool {
	return c.Status == StatusPending
}

type CommunityInquiry struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	ListingID    string    `bson:"listingId" json:"listingId"`
	ListingTitle string    `bson:"listingTitle" json:"listingTitle"`
	UserName     string    `bson:"userName" json:"userName"`
	UserPhone    string    `bson:"userPhone" json:"userPhone"`
	Reason       string    `bson:"reason" json:"reason"`
	IsDealer     string    `bson:"isDealer" json:"isDealer"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
