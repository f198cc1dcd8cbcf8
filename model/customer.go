package model

import (
	"strings"
	"time"

	"travel_manager/utils"
)

type Customer struct {
	DTO
	Name               string            `gorm:"not null" json:"name"`
	Email              string            `gorm:"index" json:"email"`
	Phone              string            `gorm:"index" json:"phone"`
	Password           string            `json:"-"`
	AssociatePartnerId *uint             `json:"associatePartnerId"`
	AssociatePartner   *AssociatePartner `gorm:"foreignKey:AssociatePartnerId" json:"associatePartner,omitempty"`
	IsActive           bool              `gorm:"default:true" json:"isActive"`
}

type Customers []Customer

type CustomerInput struct {
	Name               string `validate:"required" json:"name"`
	Email              string `validate:"omitempty,email" json:"email"`
	Phone              string `validate:"required" json:"phone"`
	AssociatePartnerId *uint  `json:"associatePartnerId"`
	IsActive           *bool  `json:"isActive"`
}

type RegisterCustomerInput struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Phone    string `validate:"required" json:"phone"`
	Password string `validate:"required,min=8" json:"password"`
}

type CustomerLoginInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

// === Chuẩn hoá trước khi validate ===

func (in *CustomerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Phone = utils.NormalizePhone(in.Phone)
}

func (in *RegisterCustomerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Phone = utils.NormalizePhone(in.Phone)
}

func (in *CustomerLoginInput) Normalize() {
	in.Email = utils.NormalizeEmail(in.Email)
}

func (in *ForgotPasswordRequest) Normalize() {
	in.Email = utils.NormalizeEmail(in.Email)
}

type FilterCustomer struct {
	Pagination
	SearchKey          string `query:"searchKey"`
	AssociatePartnerId uint   `query:"associatePartnerId"`
	Active             *bool  `query:"active"`
}
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}
type PasswordResetToken struct {
	DTO
	CustomerId uint       `gorm:"not null" json:"customerId"`
	Token      string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"token"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt     *time.Time `json:"usedAt"`
	Customer   Customer   `gorm:"foreignKey:CustomerId" json:"customer"`
}
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
