package handler

import (
	"context"
	"strings"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetFlightTickets(c *fiber.Ctx) error {
	filterInput := new(model.FilterFlightTicket)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.FlightTicket{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where(
			"LOWER(pnr) LIKE ? OR LOWER(airline_name) LIKE ? OR LOWER(flight_number) LIKE ? OR LOWER(booking_reference) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.TourPackageQueryId > 0 {
		condition = condition.Where("tour_package_query_id = ?", filterInput.TourPackageQueryId)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "flight ticket")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var tickets []model.FlightTicket
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("Passengers").Order("departure_time DESC").Find(&tickets).Error; err != nil {
		return dbError(c, err, "flight ticket")
	}
	return listResponse(c, tickets, limit, page, totalCount)
}

func findTicketByPNR(pnr string) (model.FlightTicket, error) {
	var ticket model.FlightTicket
	err := database.DB.Preload("Passengers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("pnr = ?", strings.ToUpper(strings.TrimSpace(pnr))).First(&ticket).Error
	return ticket, err
}

func GetFlightTicketByPNR(c *fiber.Ctx) error {
	ticket, err := findTicketByPNR(c.Params("pnr"))
	if err != nil {
		return dbError(c, err, "flight ticket")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

func ticketFromInput(t *model.FlightTicket, input model.FlightTicketInput) {
	t.PNR = strings.ToUpper(strings.TrimSpace(input.PNR))
	t.AirlineName = input.AirlineName
	t.AirlineCode = input.AirlineCode
	t.FlightNumber = input.FlightNumber
	t.DepartureAirport = input.DepartureAirport
	t.ArrivalAirport = input.ArrivalAirport
	t.DepartureTime = input.DepartureTime
	t.ArrivalTime = input.ArrivalTime
	t.TicketClass = input.TicketClass
	t.BaggageAllowance = input.BaggageAllowance
	t.Status = input.Status
	t.FareAmount = input.FareAmount
	t.TaxAmount = input.TaxAmount
	t.TotalAmount = input.FareAmount.Add(input.TaxAmount)
	if input.TotalAmount != nil {
		t.TotalAmount = *input.TotalAmount
	}
	t.BookingReference = input.BookingReference
	t.TourPackageQueryId = input.TourPackageQueryId
}

func passengersFromInput(ticketId uint, inputs []model.FlightPassengerInput) []model.FlightPassenger {
	passengers := make([]model.FlightPassenger, 0, len(inputs))
	for _, p := range inputs {
		passengers = append(passengers, model.FlightPassenger{
			FlightTicketId: ticketId,
			Name:           p.Name,
			Type:           p.Type,
			SeatNumber:     p.SeatNumber,
			ETicketNumber:  p.ETicketNumber,
		})
	}
	return passengers
}

// saveTicket lưu vé và thay danh sách hành khách
func saveTicket(c *fiber.Ctx, ticket *model.FlightTicket, input model.FlightTicketInput, status int) error {
	taken, err := nameTaken(&model.FlightTicket{}, "pnr", strings.ToUpper(strings.TrimSpace(input.PNR)), ticket.ID)
	if err != nil {
		return dbError(c, err, "flight ticket")
	}
	if taken {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "PNR already exists", nil, "pnr")
	}

	ticketFromInput(ticket, input)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Passengers").Save(ticket).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("flight_ticket_id = ?", ticket.ID).Delete(&model.FlightPassenger{}).Error; err != nil {
			return err
		}
		passengers := passengersFromInput(ticket.ID, input.Passengers)
		return tx.Create(&passengers).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "PNR already exists", err, "pnr")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	saved, err := findTicketByPNR(ticket.PNR)
	if err != nil {
		return dbError(c, err, "flight ticket")
	}
	return utils.SuccessResponse(c, status, saved)
}

func CreateFlightTicket(c *fiber.Ctx) error {
	input := c.Locals("inputFlightTicket").(model.FlightTicketInput)
	return saveTicket(c, &model.FlightTicket{}, input, fiber.StatusCreated)
}

func EditFlightTicket(c *fiber.Ctx) error {
	input := c.Locals("inputFlightTicket").(model.FlightTicketInput)
	var ticket model.FlightTicket
	if err := database.DB.First(&ticket, inputId(c)).Error; err != nil {
		return dbError(c, err, "flight ticket")
	}
	return saveTicket(c, &ticket, input, fiber.StatusOK)
}

// DeleteFlightTicket xoá cứng để PNR có thể dùng lại
func DeleteFlightTicket(c *fiber.Ctx) error {
	id := inputId(c)
	var ticket model.FlightTicket
	if err := database.DB.First(&ticket, id).Error; err != nil {
		return dbError(c, err, "flight ticket")
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("flight_ticket_id = ?", id).Delete(&model.FlightPassenger{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&ticket).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}

func FlightTicketPDF(c *fiber.Ctx) error {
	ticket, err := findTicketByPNR(c.Params("pnr"))
	if err != nil {
		return dbError(c, err, "flight ticket")
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), 60*time.Second)
	defer cancel()
	pdf, err := helper.RenderFlightTicketPDF(ctx, deps.PDF, deps.AgencyName, ticket)
	if err != nil {
		return pdfError(c, err)
	}
	return sendPDF(c, "tickets", ticket.PNR, pdf)
}
