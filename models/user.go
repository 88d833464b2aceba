package models

import "time"

// User is an admin account. Only admins sign in.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"password,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	CollectionProperties    = "properties"
	CollectionCommunity     = "community_listings"
	CollectionConsultations = "consultation_requests"
	CollectionInquiries     = "community_inquiries"
	CollectionUsers         = "users"
)
