package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-archivo/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	CartUC    *usecase.CartUseCase
	UserUC    *usecase.UserUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Delete)

	carts := api.Group("/carts")
	cartHandler := NewCartHandler(deps.CartUC)
	carts.Post("/", cartHandler.Create)
	carts.Get("/", cartHandler.List)
	carts.Get("/:code", cartHandler.GetByCode)
	carts.Get("/:code/owner", cartHandler.Owner)
	carts.Put("/:code", cartHandler.ReplaceItems)
	carts.Delete("/:code", cartHandler.Delete)

	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Register)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
