package router

import (
	"myOysterGuide/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetProfile, authRequired)
	users.GET("/me/taste-profile", handler.GetTasteProfile, authRequired)
	users.PUT("/me/taste-profile", handler.SetTasteProfile, authRequired)
	users.DELETE("/me/taste-profile", handler.ClearTasteProfile, authRequired)
}

func SetupOysterRoutes(api *echo.Group, handler *rest.OysterHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	oysters := api.Group("/oysters")

	oysters.GET("", handler.GetAllOysters)
	oysters.GET("/:id", handler.GetOysterByID)
	oysters.POST("", handler.CreateOyster, authRequired, adminOnly)
	oysters.PUT("/:id", handler.UpdateOyster, authRequired, adminOnly)
	oysters.DELETE("/:id", handler.DeleteOyster, authRequired, adminOnly)
}

func SetReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews", authRequired)
	reviews.POST("", handler.CreateReview)
	reviews.GET("", handler.GetMyReviews)
	reviews.PUT("/:id", handler.UpdateReview)
	reviews.DELETE("/:id", handler.DeleteReview)

	api.GET("/oysters/:id/reviews", handler.GetOysterReviews)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.GET("/collaborative", handler.CollaborativeRecommend)
	reco.GET("/hybrid", handler.HybridRecommend)
	reco.GET("/similar-users", handler.SimilarUsers)
}
