package router

import (
	"travel_manager/constants"
	"travel_manager/handler"
	"travel_manager/middleware"
	"travel_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var (
	accountingRoles = []string{constants.ROLE_ADMIN, constants.ROLE_ACCOUNTANT}
	reportRoles     = []string{constants.ROLE_ADMIN, constants.ROLE_ACCOUNTANT, constants.ROLE_MANAGER}
	catalogRoles    = []string{constants.ROLE_ADMIN, constants.ROLE_MANAGER}
)

func staff(roles ...string) []fiber.Handler {
	return []fiber.Handler{middleware.Protected(), middleware.RequireRoles(roles...)}
}

func customer() []fiber.Handler {
	return []fiber.Handler{middleware.CustomerProtected(), middleware.CustomerOnly()}
}

func with(chain []fiber.Handler, handlers ...fiber.Handler) []fiber.Handler {
	return append(chain, handlers...)
}

func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	// "/customer" và "/account" là prefix của route khác nên gắn middleware theo từng route
	account := v1.Group("/account")
	account.Get("/me", with(staff(), handler.Me)...)
	account.Post("/me/change-password", with(staff(), validate.ChangePassword(), handler.ChangePassword)...)
	account.Get("/", with(staff(constants.ROLE_ADMIN), handler.GetAccounts)...)
	account.Post("/", with(staff(constants.ROLE_ADMIN), validate.CreateAccount(), handler.CreateAccount)...)
	account.Post("/change-password", with(staff(constants.ROLE_ADMIN), validate.AdminChangePassword(), handler.AdminChangePassword)...)
	account.Patch("/:accountId/active", with(staff(constants.ROLE_ADMIN), validate.GetById("accountId"), validate.ActiveAccount(), handler.ActiveAccount)...)

	customerAdmin := v1.Group("/customer")
	customerAdmin.Get("/", with(staff(), handler.GetCustomer)...)
	customerAdmin.Get("/:customerId", with(staff(), validate.GetById("customerId"), handler.GetCustomerById)...)
	customerAdmin.Post("/", with(staff(), validate.CreateCustomer(), handler.CreateCustomer)...)
	customerAdmin.Put("/:customerId", with(staff(), validate.GetById("customerId"), validate.EditCustomer(), handler.EditCustomer)...)
	customerAdmin.Delete("/", with(staff(), validate.Delete(), handler.DeleteCustomer)...)

	customers := v1.Group("/customers")
	customers.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customers.Post("/login", validate.CustomerLogin(), handler.CustomerLogin)
	customers.Post("/refresh-token", handler.CustomerRefreshToken)
	customers.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customers.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)
	customers.Get("/me", with(customer(), handler.CustomerMe)...)
	customers.Post("/change-password", with(customer(), validate.ChangePassword(), handler.CustomerChangePassword)...)
	customers.Get("/my-bookings", with(customer(), handler.MyBookings)...)

	payments := v1.Group("/payments", customer()...)
	payments.Post("/", validate.Payment(), handler.CreatePayment)
	payments.Get("/:code", handler.GetMyPayment)

	checkout := v1.Group("/checkout")
	checkout.Get("/return", handler.CheckoutReturn)
	checkout.Post("/ipn", handler.CheckoutIPN)
	checkout.Get("/ipn", handler.CheckoutIPN)

	// === Danh mục ===
	locations := v1.Group("/locations", staff()...)
	locations.Get("/", handler.GetLocations)
	locations.Get("/:id", validate.GetById("id"), handler.GetLocationById)
	locations.Post("/", validate.Location(), handler.CreateLocation)
	locations.Put("/:id", validate.GetById("id"), validate.Location(), handler.EditLocation)
	locations.Delete("/:id", validate.GetById("id"), handler.DeleteLocation)

	v1.Get("/places/autocomplete", with(staff(), handler.PlacesAutocomplete)...)

	hotels := v1.Group("/hotels", staff()...)
	hotels.Get("/", handler.GetHotels)
	hotels.Get("/:id", validate.GetById("id"), handler.GetHotelById)
	hotels.Post("/", validate.Hotel(), handler.CreateHotel)
	hotels.Put("/:id", validate.GetById("id"), validate.Hotel(), handler.EditHotel)
	hotels.Delete("/:id", validate.GetById("id"), handler.DeleteHotel)

	partners := v1.Group("/associate-partners", staff()...)
	partners.Get("/", handler.GetAssociatePartners)
	partners.Get("/:id", validate.GetById("id"), handler.GetAssociatePartnerById)
	partners.Post("/", validate.AssociatePartner(), handler.CreateAssociatePartner)
	partners.Put("/:id", validate.GetById("id"), validate.AssociatePartner(), handler.EditAssociatePartner)
	partners.Delete("/:id", validate.GetById("id"), handler.DeleteAssociatePartner)

	suppliers := v1.Group("/suppliers", staff()...)
	suppliers.Get("/", handler.GetSuppliers)
	suppliers.Get("/:id", validate.GetById("id"), handler.GetSupplierById)
	suppliers.Post("/", validate.Supplier(), handler.CreateSupplier)
	suppliers.Put("/:id", validate.GetById("id"), validate.Supplier(), handler.EditSupplier)
	suppliers.Delete("/:id", validate.GetById("id"), handler.DeleteSupplier)

	expense := v1.Group("/expense-categories", staff()...)
	expense.Get("/", handler.GetExpenseCategories)
	expense.Get("/:id", validate.GetById("id"), handler.GetExpenseCategoryById)
	expense.Post("/", validate.Category(), handler.CreateExpenseCategory)
	expense.Put("/:id", validate.GetById("id"), validate.Category(), handler.EditExpenseCategory)
	expense.Delete("/:id", validate.GetById("id"), handler.DeleteExpenseCategory)

	income := v1.Group("/income-categories", staff()...)
	income.Get("/", handler.GetIncomeCategories)
	income.Get("/:id", validate.GetById("id"), handler.GetIncomeCategoryById)
	income.Post("/", validate.Category(), handler.CreateIncomeCategory)
	income.Put("/:id", validate.GetById("id"), validate.Category(), handler.EditIncomeCategory)
	income.Delete("/:id", validate.GetById("id"), handler.DeleteIncomeCategory)

	uploads := v1.Group("/uploads", staff()...)
	uploads.Post("/images", handler.UploadImages)
	uploads.Get("/signature", handler.UploadSignature)

	// === Tour ===
	packages := v1.Group("/tourPackages", staff()...)
	packages.Get("/", handler.GetTourPackages)
	packages.Get("/:id", validate.GetById("id"), handler.GetTourPackageById)
	packages.Post("/", validate.TourPackage(), handler.CreateTourPackage)
	packages.Put("/:id", validate.GetById("id"), validate.TourPackage(), handler.EditTourPackage)
	packages.Post("/:id/duplicate", validate.GetById("id"), handler.DuplicateTourPackage)
	packages.Delete("/:id", validate.GetById("id"), handler.DeleteTourPackage)

	queries := v1.Group("/tourPackageQuery", staff()...)
	queries.Get("/", handler.GetTourPackageQueries)
	queries.Post("/", validate.TourPackageQuery(), handler.CreateTourPackageQuery)
	queries.Post("/from-package/:tourPackageId", validate.GetById("tourPackageId"), validate.FromPackage(), handler.CreateQueryFromPackage)
	queries.Get("/:id", validate.GetById("id"), handler.GetTourPackageQueryById)
	queries.Patch("/:id", validate.GetById("id"), validate.EditTourPackageQuery(), handler.EditTourPackageQuery)
	queries.Delete("/:id", validate.GetById("id"), handler.DeleteTourPackageQuery)
	queries.Patch("/:id/status", validate.GetById("id"), validate.QueryStatus(), handler.UpdateQueryStatus)
	queries.Get("/:id/pdf", validate.GetById("id"), handler.QueryPDF)
	queries.Post("/:id/send", validate.GetById("id"), validate.SendQuery(), handler.SendQuery)
	queries.Get("/:id/accounting", validate.GetById("id"), middleware.RequireRoles(accountingRoles...), handler.GetAccounting)
	queries.Patch("/:id/accounting", validate.GetById("id"), middleware.RequireRoles(accountingRoles...), validate.Accounting(), handler.UpdateAccounting)

	inquiries := v1.Group("/inquiries", staff()...)
	inquiries.Get("/", handler.GetInquiries)
	inquiries.Patch("/:id/status", validate.GetById("id"), validate.InquiryStatus(), handler.UpdateInquiryStatus)
	inquiries.Post("/:id/convert", validate.GetById("id"), handler.ConvertInquiry)

	tickets := v1.Group("/flight-tickets", staff()...)
	tickets.Get("/", handler.GetFlightTickets)
	tickets.Post("/", validate.FlightTicket(), handler.CreateFlightTicket)
	tickets.Get("/pnr/:pnr", handler.GetFlightTicketByPNR)
	tickets.Get("/:pnr/pdf", handler.FlightTicketPDF)
	tickets.Put("/:id", validate.GetById("id"), validate.FlightTicket(), handler.EditFlightTicket)
	tickets.Delete("/:id", validate.GetById("id"), handler.DeleteFlightTicket)

	// === Kế toán ===
	v1.Get("/accounting/:kind", with(staff(accountingRoles...), handler.GetAccountingByKind)...)

	returns := v1.Group("/purchase-returns", staff(accountingRoles...)...)
	returns.Get("/", handler.GetPurchaseReturns)
	returns.Get("/:id", validate.GetById("id"), handler.GetPurchaseReturnById)
	returns.Post("/", validate.PurchaseReturn(), handler.CreatePurchaseReturn)
	returns.Put("/:id", validate.GetById("id"), validate.PurchaseReturn(), handler.EditPurchaseReturn)
	returns.Delete("/:id", validate.GetById("id"), handler.DeletePurchaseReturn)

	reports := v1.Group("/reports", staff(reportRoles...)...)
	reports.Get("/profit", handler.ProfitReport)
	reports.Get("/profit/export", handler.ExportProfitReport)

	v1.Get("/statistic", with(staff(), handler.DashboardStatistic)...)

	// === WhatsApp catalog ===
	catalogRoutes(api.Group("/whatsapp/catalog", staff(catalogRoles...)...))
	catalogRoutes(v1.Group("/whatsapp/catalog", staff(catalogRoles...)...))

	// === Trang public ===
	travel := v1.Group("/travel")
	travel.Get("/destinations", handler.TravelDestinations)
	travel.Get("/destinations/:slug", handler.TravelDestination)
	travel.Get("/packages", handler.TravelPackages)
	travel.Get("/packages/:slug", handler.TravelPackage)
	travel.Post("/inquiries", middleware.OptionalCustomer(), validate.Inquiry(), handler.CreateInquiry)
}

func catalogRoutes(catalog fiber.Router) {
	catalog.Get("/", handler.GetCatalogProducts)
	catalog.Get("/remote", handler.GetRemoteCatalog)
	catalog.Get("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, websocket.New(handler.CatalogSyncSocket))
	catalog.Post("/", validate.CatalogProduct(), handler.CreateCatalogProduct)
	catalog.Post("/sync", handler.SyncAllCatalog)
	catalog.Put("/:productId", validate.GetById("productId"), validate.CatalogProduct(), handler.EditCatalogProduct)
	catalog.Delete("/:productId", validate.GetById("productId"), handler.DeleteCatalogProduct)
	catalog.Post("/:productId/sync", validate.GetById("productId"), handler.SyncCatalogProduct)
}
