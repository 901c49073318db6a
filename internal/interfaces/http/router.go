package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturaec/emision-api/internal/application/billing"
	"github.com/facturaec/emision-api/internal/application/credits"
	"github.com/facturaec/emision-api/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Drafts  *billing.DraftUseCase
	Submit  *billing.SubmitUseCase
	Refs    *billing.ReferenceUseCase
	Credits *credits.Monitor
	Session *session.Session
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	sessionHandler := NewSessionHandler(deps.Session)
	authGroup.Post("/login", sessionHandler.Login)
	authGroup.Post("/logout", sessionHandler.Logout)

	// Rutas protegidas (requieren Bearer Token; se reenvía al backend tal cual)
	protected := api.Group("/", AuthMiddleware())

	// Referencias (protegido, solo lectura)
	referenceHandler := NewReferenceHandler(deps.Refs)
	protected.Get("/references", referenceHandler.List)

	// Créditos (protegido)
	creditHandler := NewCreditHandler(deps.Credits)
	creditsGroup := protected.Group("/credits")
	creditsGroup.Get("/", creditHandler.Get)
	creditsGroup.Post("/refresh", creditHandler.Refresh)

	// Borradores de factura (protegido)
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.Drafts, deps.Submit)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Put("/:id/client", draftHandler.UpdateClient)
	drafts.Post("/:id/items", draftHandler.AddItem)
	drafts.Put("/:id/items/:index", draftHandler.UpdateItem)
	drafts.Delete("/:id/items/:index", draftHandler.RemoveItem)
	drafts.Put("/:id/references", draftHandler.UpdateReferences)
	drafts.Put("/:id/payment", draftHandler.UpdatePayment)
	drafts.Put("/:id/bridge", draftHandler.UpdateBridge)
	drafts.Post("/:id/submit", draftHandler.Submit)
}
