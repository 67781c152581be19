package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/auth"
	"github.com/mrvekratl/BE124/internal/application/cart"
	"github.com/mrvekratl/BE124/internal/application/checkout"
	"github.com/mrvekratl/BE124/internal/application/usecase"
	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProfileUC  *account.ProfileUseCase
	SellerUC   *account.SellerUseCase
	CartUC     *cart.UseCase
	CheckoutUC *checkout.UseCase
	ReceiptUC  *checkout.ReceiptUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CommentUC  *usecase.CommentUseCase
	ContactUC  *usecase.ContactUseCase
	UserUC     *usecase.UserUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	accountHandler := NewAccountHandler(deps.ProfileUC, deps.SellerUC)
	cartHandler := NewCartHandler(deps.CartUC)
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.ReceiptUC)
	productHandler := NewProductHandler(deps.ProductUC)
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.CommentUC, deps.ContactUC)
	userHandler := NewUserHandler(deps.UserUC)

	// JWT + cuenta habilitada
	authed := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireActiveAccount(deps.ProfileUC)}
	with := func(extra ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, authed...), extra...)
	}

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Vitrina (público)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Detail)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/contact", catalogHandler.SubmitContact)

	// Reseñas (autenticado)
	api.Post("/products/:id/comments", append(with(), catalogHandler.AddComment)...)

	// Perfil
	profile := api.Group("/profile", with()...)
	profile.Get("/", accountHandler.GetProfile)
	profile.Put("/", accountHandler.EditProfile)
	profile.Post("/seller-request", accountHandler.SubmitSellerRequest)

	// Carrito
	cartGroup := api.Group("/cart", with()...)
	cartGroup.Get("/", cartHandler.List)
	cartGroup.Post("/items", cartHandler.Add)
	cartGroup.Put("/items/:id", cartHandler.UpdateQuantity)
	cartGroup.Delete("/items/:id", cartHandler.Remove)

	// Pedidos
	orders := api.Group("/orders", with()...)
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/:code", orderHandler.Get)
	orders.Get("/:code/receipt", orderHandler.Receipt)

	// Vendedor
	seller := api.Group("/seller", with(RequireRole(entity.RoleSeller.Claim()))...)
	seller.Get("/products", productHandler.Mine)
	seller.Post("/products", productHandler.Create)
	seller.Put("/products/:id", productHandler.Update)
	seller.Delete("/products/:id", productHandler.Delete)

	// Administración
	admin := api.Group("/admin", with(RequireRole(entity.RoleAdmin.Claim()))...)
	admin.Get("/users", userHandler.List)
	admin.Post("/users/:id/enable", userHandler.Enable)
	admin.Post("/users/:id/disable", userHandler.Disable)
	admin.Get("/seller-requests", accountHandler.ListSellerRequests)
	admin.Post("/seller-requests/:userId/approve", accountHandler.ApproveSellerRequest)
	admin.Post("/seller-requests/:userId/reject", accountHandler.RejectSellerRequest)
	admin.Get("/categories", catalogHandler.ListCategories)
	admin.Post("/categories", catalogHandler.CreateCategory)
	admin.Put("/categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", catalogHandler.DeleteCategory)
	admin.Get("/products", productHandler.AdminList)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Get("/comments", catalogHandler.ListComments)
	admin.Post("/comments/:id/approve", catalogHandler.ApproveComment)
	admin.Get("/contact", catalogHandler.ListContact)
}
