package router

import (
	"smartshop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("/profile", handler.GetProfile, authRequired)
	users.POST("/logout", handler.Logout, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/popular", handler.GetPopularProducts)
	products.GET("/trending", handler.GetTrendingProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("/:id/track", handler.TrackInteraction)

	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	api.GET("/search", handler.Search)
	api.GET("/search/categories", handler.Categories)
	api.GET("/search/brands", handler.Brands)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
	reco.GET("/similar/:id", handler.Similar)
	reco.GET("/complementary/:id", handler.Complementary)
}

func SetChatRoutes(api *echo.Group, handler *rest.ChatHandler) {
	api.POST("/chat", handler.Chat)
}
