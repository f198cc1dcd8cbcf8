package validate

import (
	"strings"

	"travel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func trimName(name *string) {
	*name = strings.TrimSpace(*name)
}

func Location() fiber.Handler {
	return Body("inputLocation", func(c *fiber.Ctx, input *model.LocationInput) error {
		trimName(&input.Label)
		if input.Value == "" {
			input.Value = input.Label
		}
		return nil
	})
}

func Hotel() fiber.Handler {
	return Body("inputHotel", func(c *fiber.Ctx, input *model.HotelInput) error {
		trimName(&input.Name)
		return nil
	})
}

func AssociatePartner() fiber.Handler {
	return Body("inputAssociatePartner", func(c *fiber.Ctx, input *model.AssociatePartnerInput) error {
		trimName(&input.Name)
		return nil
	})
}

func Supplier() fiber.Handler {
	return Body("inputSupplier", func(c *fiber.Ctx, input *model.SupplierInput) error {
		trimName(&input.Name)
		return nil
	})
}

func Category() fiber.Handler {
	return Body("inputCategory", func(c *fiber.Ctx, input *model.CategoryInput) error {
		trimName(&input.Name)
		return nil
	})
}
