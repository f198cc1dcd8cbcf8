package model

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Password     string `gorm:"not null" json:"-"`
	RefreshToken string `json:"-"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	Role         string `gorm:"not null" json:"role"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
}

type Accounts []Account

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateAccountInput struct {
	Username string `validate:"required,min=3,max=50" json:"username"`
	Password string `validate:"required,min=6,max=50" json:"password"`
	Role     string `validate:"required,oneof=ADMIN MANAGER ACCOUNTANT SALES" json:"role"`
	FullName string `json:"fullName"`
	Email    string `validate:"omitempty,email" json:"email"`
}

type ActiveAccountInput struct {
	Active *bool `json:"active" validate:"required"`
}

type FilterAccount struct {
	Pagination
	SearchKey string  `query:"searchKey"`
	Active    *bool   `query:"active"`
	Role      *string `query:"role"`
}
