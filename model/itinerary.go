package model

// Image thuộc đúng một chủ sở hữu: itinerary, activity, hotel, tour package, query hoặc location
type Image struct {
	DTO
	Url                string `gorm:"not null" json:"url"`
	PublicID           string `json:"publicId"`
	ItineraryId        *uint  `gorm:"index" json:"itineraryId,omitempty"`
	ActivityId         *uint  `gorm:"index" json:"activityId,omitempty"`
	HotelId            *uint  `gorm:"index" json:"hotelId,omitempty"`
	TourPackageId      *uint  `gorm:"index" json:"tourPackageId,omitempty"`
	TourPackageQueryId *uint  `gorm:"index" json:"tourPackageQueryId,omitempty"`
}

type Itinerary struct {
	DTO
	TourPackageId        *uint      `gorm:"index" json:"tourPackageId,omitempty"`
	TourPackageQueryId   *uint      `gorm:"index" json:"tourPackageQueryId,omitempty"`
	DayNumber            int        `gorm:"not null" json:"dayNumber"`
	Days                 string     `json:"days"`
	ItineraryTitle       string     `json:"itineraryTitle"`
	ItineraryDescription string     `gorm:"type:text" json:"itineraryDescription"`
	HotelId              *uint      `json:"hotelId"`
	Hotel                *Hotel     `gorm:"foreignKey:HotelId" json:"hotel,omitempty"`
	NumberOfRooms        int        `json:"numberOfRooms"`
	RoomCategory         string     `json:"roomCategory"`
	MealsIncluded        string     `json:"mealsIncluded"`
	Transport            string     `json:"transport"`
	Images               []Image    `gorm:"foreignKey:ItineraryId" json:"images"`
	Activities           []Activity `gorm:"foreignKey:ItineraryId" json:"activities"`
}

type Activity struct {
	DTO
	ItineraryId         uint    `gorm:"not null;index" json:"itineraryId"`
	ActivityTitle       string  `json:"activityTitle"`
	ActivityDescription string  `gorm:"type:text" json:"activityDescription"`
	Images              []Image `gorm:"foreignKey:ActivityId" json:"images"`
}

type ItineraryInput struct {
	DayNumber            *int            `validate:"omitempty,min=1" json:"dayNumber"`
	Days                 string          `json:"days"`
	ItineraryTitle       string          `validate:"required" json:"itineraryTitle"`
	ItineraryDescription string          `json:"itineraryDescription"`
	HotelId              *uint           `json:"hotelId"`
	NumberOfRooms        int             `validate:"min=0" json:"numberOfRooms"`
	RoomCategory         string          `json:"roomCategory"`
	MealsIncluded        string          `json:"mealsIncluded"`
	Transport            string          `json:"transport"`
	Images               []ImageInput    `validate:"dive" json:"images"`
	Activities           []ActivityInput `validate:"dive" json:"activities"`
}

type ActivityInput struct {
	ActivityTitle       string       `validate:"required" json:"activityTitle"`
	ActivityDescription string       `json:"activityDescription"`
	Images              []ImageInput `validate:"dive" json:"images"`
}

// ItineraryOwner xác định chủ sở hữu cây itinerary, chỉ một trong hai id được gán
type ItineraryOwner struct {
	TourPackageId      *uint
	TourPackageQueryId *uint
}
