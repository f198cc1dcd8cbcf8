package validate

import (
	"errors"

	"travel_manager/constants"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func checkItineraries(c *fiber.Ctx, items []model.ItineraryInput) error {
	if _, err := helper.BuildItineraries(items); err != nil {
		return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "itineraries")
	}
	return nil
}

func TourPackage() fiber.Handler {
	return Body("inputTourPackage", func(c *fiber.Ctx, input *model.TourPackageInput) error {
		trimName(&input.Name)
		return checkItineraries(c, input.Itineraries)
	})
}

func TourPackageQuery() fiber.Handler {
	return Body("inputTourPackageQuery", func(c *fiber.Ctx, input *model.TourPackageQueryInput) error {
		if err := helper.ValidatePeriod(input.PeriodFrom.Time, input.PeriodTo.Time); err != nil {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "periodTo")
		}
		if input.TotalPrice.IsNegative() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("totalPrice must not be negative"), "totalPrice")
		}
		return checkItineraries(c, input.Itineraries)
	})
}

// FromPackage chỉ cần thông tin khách và thời gian, lịch trình lấy từ package
func FromPackage() fiber.Handler {
	return Body("inputFromPackage", func(c *fiber.Ctx, input *model.FromPackageInput) error {
		if err := helper.ValidatePeriod(input.PeriodFrom.Time, input.PeriodTo.Time); err != nil {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "periodTo")
		}
		return nil
	})
}

func EditTourPackageQuery() fiber.Handler {
	return Body("inputEditTourPackageQuery", func(c *fiber.Ctx, input *model.EditTourPackageQueryInput) error {
		if input.PeriodFrom != nil && input.PeriodTo != nil {
			if err := helper.ValidatePeriod(input.PeriodFrom.Time, input.PeriodTo.Time); err != nil {
				return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "periodTo")
			}
		}
		if input.TotalPrice != nil && input.TotalPrice.IsNegative() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("totalPrice must not be negative"), "totalPrice")
		}
		if input.Itineraries != nil {
			return checkItineraries(c, *input.Itineraries)
		}
		return nil
	})
}

func QueryStatus() fiber.Handler {
	return Body[model.QueryStatusInput]("inputQueryStatus")
}

func SendQuery() fiber.Handler {
	return Body[model.SendQueryInput]("inputSendQuery")
}

// Accounting trả về danh sách ô lỗi dạng <tab>[<index>].<field>
func Accounting() fiber.Handler {
	return Body("inputAccounting", func(c *fiber.Ctx, input *model.AccountingInput) error {
		if errs := helper.ValidateAccounting(*input); len(errs) > 0 {
			if err := c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": constants.VALIDATION_FAILED,
				"error":   errs[0].Field + " " + errs[0].Message,
				"errors":  errs,
			}); err != nil {
				return err
			}
			return stop{err: errors.New(constants.VALIDATION_FAILED)}
		}
		return nil
	})
}

func PurchaseReturn() fiber.Handler {
	return Body("inputPurchaseReturn", func(c *fiber.Ctx, input *model.PurchaseReturnInput) error {
		if input.ReturnDate.IsZero() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("returnDate is required"), "returnDate")
		}
		if !input.Amount.IsPositive() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("amount must be greater than 0"), "amount")
		}
		if input.GstAmount.IsNegative() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("gstAmount must not be negative"), "gstAmount")
		}
		if input.Status == "" {
			input.Status = constants.PURCHASE_RETURN_PENDING
		}
		return nil
	})
}

func FlightTicket() fiber.Handler {
	return Body("inputFlightTicket", func(c *fiber.Ctx, input *model.FlightTicketInput) error {
		if input.DepartureTime.IsZero() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("departureTime is required"), "departureTime")
		}
		if !input.ArrivalTime.After(input.DepartureTime) {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("arrivalTime must be after departureTime"), "arrivalTime")
		}
		if input.FareAmount.IsNegative() || input.TaxAmount.IsNegative() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("amounts must not be negative"), "fareAmount")
		}
		if input.TotalAmount == nil {
			total := input.FareAmount.Add(input.TaxAmount)
			input.TotalAmount = &total
		}
		if input.Status == "" {
			input.Status = constants.TICKET_CONFIRMED
		}
		for i := range input.Passengers {
			if input.Passengers[i].Type == "" {
				input.Passengers[i].Type = "ADULT"
			}
		}
		return nil
	})
}

func CatalogProduct() fiber.Handler {
	return Body("inputCatalogProduct", func(c *fiber.Ctx, input *model.CatalogProductInput) error {
		if input.Price != nil && !input.Price.IsPositive() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("price must be greater than 0"), "price")
		}
		if input.Availability == "" {
			input.Availability = "in stock"
		}
		return nil
	})
}

func Inquiry() fiber.Handler {
	return Body("inputInquiry", func(c *fiber.Ctx, input *model.InquiryInput) error {
		if input.JourneyDate != nil && !input.JourneyDate.IsZero() && input.JourneyDate.String() < utils.Today() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("journeyDate must not be in the past"), "journeyDate")
		}
		return nil
	})
}

func InquiryStatus() fiber.Handler {
	return Body[model.InquiryStatusInput]("inputInquiryStatus")
}

func Payment() fiber.Handler {
	return Body("inputPayment", func(c *fiber.Ctx, input *model.CreatePaymentInput) error {
		if input.Amount.IsNegative() {
			return halt(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("amount must not be negative"), "amount")
		}
		return nil
	})
}
