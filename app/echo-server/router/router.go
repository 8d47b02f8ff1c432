package router

import (
	"makeItSell/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecoHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend)
}

func SetRecoAdminRoutes(api *echo.Group, handler *rest.RecoAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/reco", authRequired, adminOnly)

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}

func SetBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, authRequired echo.MiddlewareFunc) {
	behavior := api.Group("/behavior", authRequired)

	behavior.POST("/events", handler.PostEvent)
	behavior.GET("/snapshot", handler.GetSnapshot)
}
