package model

type Location struct {
	DTO
	Label       string  `gorm:"not null;uniqueIndex" json:"label"`
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Value       string  `json:"value"`
	Description string  `gorm:"type:text" json:"description"`
	ImageUrl    string  `json:"imageUrl"`
	Tags        string  `json:"tags"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`

	PackageCount int64 `gorm:"-" json:"packageCount,omitempty"`
}

type LocationInput struct {
	Label       string   `validate:"required,max=255" json:"label"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	ImageUrl    string   `json:"imageUrl"`
	Tags        string   `json:"tags"`
	IsActive    *bool    `json:"isActive"`
	Lat         *float64 `validate:"omitempty,latitude" json:"lat"`
	Lng         *float64 `validate:"omitempty,longitude" json:"lng"`
}

type Hotel struct {
	DTO
	Name        string    `gorm:"not null" json:"name"`
	LocationId  uint      `gorm:"not null;index" json:"locationId"`
	Location    *Location `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	Link        string    `json:"link"`
	Destination string    `json:"destination"`
	Images      []Image   `gorm:"foreignKey:HotelId" json:"images"`
}

type HotelInput struct {
	Name        string       `validate:"required" json:"name"`
	LocationId  uint         `validate:"required" json:"locationId"`
	Link        string       `validate:"omitempty,url" json:"link"`
	Destination string       `json:"destination"`
	Images      []ImageInput `validate:"dive" json:"images"`
}

type AssociatePartner struct {
	DTO
	Name     string `gorm:"not null;uniqueIndex" json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Gmail    string `json:"gmail"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type AssociatePartnerInput struct {
	Name     string `validate:"required" json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `validate:"omitempty,email" json:"email"`
	Gmail    string `validate:"omitempty,email" json:"gmail"`
	IsActive *bool  `json:"isActive"`
}

type Supplier struct {
	DTO
	Name          string `gorm:"not null;uniqueIndex" json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GstNumber     string `json:"gstNumber"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
}

type SupplierInput struct {
	Name          string `validate:"required" json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `validate:"omitempty,email" json:"email"`
	Address       string `json:"address"`
	GstNumber     string `json:"gstNumber"`
	IsActive      *bool  `json:"isActive"`
}

type ExpenseCategory struct {
	DTO
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

type IncomeCategory struct {
	DTO
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

type CategoryInput struct {
	Name        string `validate:"required" json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type FilterMaster struct {
	Pagination
	SearchKey  string `query:"searchKey"`
	LocationId uint   `query:"locationId"`
	Active     *bool  `query:"active"`
}
