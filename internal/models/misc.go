package models

import "github.com/google/uuid"

type Enquiry struct {
	BaseModel
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	IsResponded bool   `json:"is_responded"`
	Response    string `json:"response"`
}

type Review struct {
	BaseModel
	CustomerName string     `json:"customer_name"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	ProductID    *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Product      *Product   `json:"product,omitempty"`
	IsApproved   bool       `json:"is_approved"`
}
