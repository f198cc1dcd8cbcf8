package helper

import (
	"errors"
	"fmt"
	"sort"

	"travel_manager/model"

	"gorm.io/gorm"
)

var ErrDuplicateDayNumber = errors.New("duplicate itinerary day number")

func BuildImages(inputs []model.ImageInput) []model.Image {
	images := make([]model.Image, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, model.Image{Url: in.Url, PublicID: in.PublicID})
	}
	return images
}

// BuildItineraries chuyển form ngày -> hoạt động -> ảnh thành model, sắp theo DayNumber
func BuildItineraries(inputs []model.ItineraryInput) ([]model.Itinerary, error) {
	items := make([]model.Itinerary, 0, len(inputs))
	seen := make(map[int]bool, len(inputs))

	for i, in := range inputs {
		day := i + 1
		if in.DayNumber != nil && *in.DayNumber > 0 {
			day = *in.DayNumber
		}
		if seen[day] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDayNumber, day)
		}
		seen[day] = true

		activities := make([]model.Activity, 0, len(in.Activities))
		for _, a := range in.Activities {
			activities = append(activities, model.Activity{
				ActivityTitle:       a.ActivityTitle,
				ActivityDescription: a.ActivityDescription,
				Images:              BuildImages(a.Images),
			})
		}

		items = append(items, model.Itinerary{
			DayNumber:            day,
			Days:                 in.Days,
			ItineraryTitle:       in.ItineraryTitle,
			ItineraryDescription: in.ItineraryDescription,
			HotelId:              in.HotelId,
			NumberOfRooms:        in.NumberOfRooms,
			RoomCategory:         in.RoomCategory,
			MealsIncluded:        in.MealsIncluded,
			Transport:            in.Transport,
			Images:               BuildImages(in.Images),
			Activities:           activities,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].DayNumber < items[j].DayNumber })
	return items, nil
}

func ownerColumn(owner model.ItineraryOwner) (string, uint, error) {
	switch {
	case owner.TourPackageId != nil && owner.TourPackageQueryId == nil:
		return "tour_package_id", *owner.TourPackageId, nil
	case owner.TourPackageQueryId != nil && owner.TourPackageId == nil:
		return "tour_package_query_id", *owner.TourPackageQueryId, nil
	default:
		return "", 0, errors.New("itinerary owner must be exactly one of tour package or query")
	}
}

// DeleteItineraries xoá cả cây: ảnh activity, activity, ảnh itinerary, itinerary
func DeleteItineraries(tx *gorm.DB, owner model.ItineraryOwner) error {
	col, id, err := ownerColumn(owner)
	if err != nil {
		return err
	}

	itineraryIds := tx.Unscoped().Model(&model.Itinerary{}).Select("id").Where(col+" = ?", id)
	activityIds := tx.Unscoped().Model(&model.Activity{}).Select("id").Where("itinerary_id IN (?)", itineraryIds)

	if err := tx.Unscoped().Where("activity_id IN (?)", activityIds).Delete(&model.Image{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("itinerary_id IN (?)", itineraryIds).Delete(&model.Activity{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("itinerary_id IN (?)", itineraryIds).Delete(&model.Image{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where(col+" = ?", id).Delete(&model.Itinerary{}).Error
}

// ReplaceItineraries thay toàn bộ lịch trình của owner trong transaction của caller
func ReplaceItineraries(tx *gorm.DB, owner model.ItineraryOwner, items []model.Itinerary) error {
	if err := DeleteItineraries(tx, owner); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].TourPackageId = owner.TourPackageId
		items[i].TourPackageQueryId = owner.TourPackageQueryId
		for j := range items[i].Images {
			items[i].Images[j].ID = 0
		}
		for j := range items[i].Activities {
			items[i].Activities[j].ID = 0
			for k := range items[i].Activities[j].Images {
				items[i].Activities[j].Images[k].ID = 0
			}
		}
	}
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Create(&items).Error
}

// ReplaceOwnerImages thay ảnh gắn trực tiếp với tour package, query hoặc hotel
func ReplaceOwnerImages(tx *gorm.DB, column string, ownerId uint, images []model.Image) error {
	if err := tx.Unscoped().Where(column+" = ?", ownerId).Delete(&model.Image{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = 0
		switch column {
		case "tour_package_id":
			images[i].TourPackageId = &ownerId
		case "tour_package_query_id":
			images[i].TourPackageQueryId = &ownerId
		case "hotel_id":
			images[i].HotelId = &ownerId
		default:
			return fmt.Errorf("unsupported image owner %s", column)
		}
	}
	return tx.Create(&images).Error
}

// CloneItineraries sao chép cây lịch trình (bỏ id) để gán cho owner mới
func CloneItineraries(src []model.Itinerary) []model.Itinerary {
	out := make([]model.Itinerary, 0, len(src))
	for _, it := range src {
		clone := it
		clone.DTO = model.DTO{}
		clone.Hotel = nil
		clone.TourPackageId = nil
		clone.TourPackageQueryId = nil
		clone.Images = cloneImages(it.Images)
		clone.Activities = make([]model.Activity, 0, len(it.Activities))
		for _, a := range it.Activities {
			ac := a
			ac.DTO = model.DTO{}
			ac.ItineraryId = 0
			ac.Images = cloneImages(a.Images)
			clone.Activities = append(clone.Activities, ac)
		}
		out = append(out, clone)
	}
	return out
}

func cloneImages(src []model.Image) []model.Image {
	out := make([]model.Image, 0, len(src))
	for _, img := range src {
		out = append(out, model.Image{Url: img.Url, PublicID: img.PublicID})
	}
	return out
}

// PreloadItineraries nạp cây lịch trình theo thứ tự ngày
func PreloadItineraries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Itineraries", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Preload("Itineraries.Hotel").
		Preload("Itineraries.Images").
		Preload("Itineraries.Activities", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Itineraries.Activities.Images")
}
