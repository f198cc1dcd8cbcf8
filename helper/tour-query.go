package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"travel_manager/constants"
	"travel_manager/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidPeriod = errors.New("periodTo must not be before periodFrom")

// === Mã query ===

// GenerateQueryNumber tạo mã TPQ-YYYYMMDD-XXXXXX, thử lại khi trùng
func GenerateQueryNumber(tx *gorm.DB, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
		number := fmt.Sprintf("TPQ-%s-%s", now.Format("20060102"), suffix)

		var count int64
		if err := tx.Unscoped().Model(&model.TourPackageQuery{}).Where("query_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not generate unique query number")
}

// === Trạng thái ===

var queryTransitions = map[string][]string{
	constants.QUERY_PENDING:   {constants.QUERY_CONFIRMED, constants.QUERY_CANCELLED},
	constants.QUERY_CONFIRMED: {constants.QUERY_COMPLETED, constants.QUERY_CANCELLED},
}

func CanTransitionQuery(from, to string) bool {
	for _, s := range queryTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return errors.New("periodFrom and periodTo are required")
	}
	if to.Before(from) {
		return ErrInvalidPeriod
	}
	return nil
}

// === Giá ===

// CalculateQueryPrice tính tổng theo giá từng nhóm khách của tour package
func CalculateQueryPrice(pkg model.TourPackage, adults, child5to12, childBelow5 int) decimal.Decimal {
	adultPrice := pkg.PricePerAdult
	if adultPrice.IsZero() {
		adultPrice = pkg.Price
	}
	total := adultPrice.Mul(decimal.NewFromInt(int64(adults)))
	total = total.Add(pkg.PricePerChild5to12.Mul(decimal.NewFromInt(int64(child5to12))))
	total = total.Add(pkg.PricePerChildBelow5.Mul(decimal.NewFromInt(int64(childBelow5))))
	return total.Round(2)
}

// QueryFromPackage dựng query mới từ tour package: lịch trình, ảnh, giá
func QueryFromPackage(pkg model.TourPackage, in model.TourPackageQueryInput) model.TourPackageQuery {
	q := model.TourPackageQuery{
		TourPackageQueryName: in.TourPackageQueryName,
		CustomerName:         in.CustomerName,
		CustomerNumber:       in.CustomerNumber,
		CustomerId:           in.CustomerId,
		AssociatePartnerId:   in.AssociatePartnerId,
		LocationId:           pkg.LocationId,
		TourPackageId:        &pkg.ID,
		NumAdults:            in.NumAdults,
		NumChild5to12:        in.NumChild5to12,
		NumChildBelow5:       in.NumChildBelow5,
		PeriodFrom:           in.PeriodFrom,
		PeriodTo:             in.PeriodTo,
		Transport:            in.Transport,
		PickupLocation:       in.PickupLocation,
		DropLocation:         in.DropLocation,
		Remarks:              in.Remarks,
		Status:               constants.QUERY_PENDING,
		Images:               cloneImages(pkg.Images),
		Itineraries:          CloneItineraries(pkg.Itineraries),
	}
	if q.TourPackageQueryName == "" {
		q.TourPackageQueryName = pkg.Name
	}
	if in.TotalPrice.IsPositive() {
		q.TotalPrice = in.TotalPrice
	} else {
		q.TotalPrice = CalculateQueryPrice(pkg, in.NumAdults, in.NumChild5to12, in.NumChildBelow5)
	}
	return q
}

// PreloadQueryTree nạp đầy đủ query cho trang chi tiết và PDF
func PreloadQueryTree(db *gorm.DB) *gorm.DB {
	return PreloadItineraries(db).
		Preload("Location").
		Preload("Customer").
		Preload("AssociatePartner").
		Preload("TourPackage").
		Preload("Images").
		Preload("FlightDetails.Passengers")
}
