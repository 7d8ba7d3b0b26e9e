package routes

import (
	"luxestay/constants"
	"luxestay/controllers"
	"luxestay/middleware"
	"luxestay/services"
	"luxestay/services/logger"

	"github.com/gin-gonic/gin"
)

// Handlers gom các controller đã khởi tạo
type Handlers struct {
	Auth     controllers.AuthController
	Hotels   controllers.HotelController
	Bookings controllers.BookingController
	Contacts controllers.ContactController
	Users    controllers.UserController
	Admin    controllers.AdminController
}

func SetupRoutes(router *gin.Engine, h Handlers, tokens *services.TokenManager, limiter *services.RateLimiter, log logger.Logger) {
	auth := middleware.AuthMiddleware(tokens)
	admin := middleware.AuthMiddleware(tokens, constants.RoleAdmin)

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter, log))

	api.GET("/health", controllers.Health)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", auth, h.Auth.Me)
	api.POST("/hotel-auth/register", h.Auth.HotelRegister)
	api.POST("/hotel-auth/login", h.Auth.HotelLogin)

	api.GET("/hotels", h.Hotels.SearchHotels)
	api.GET("/hotels/featured", h.Hotels.GetFeatured)
	api.GET("/hotels/:id", middleware.OptionalAuth(tokens), h.Hotels.GetHotel)
	api.POST("/hotels", admin, h.Hotels.CreateHotel)
	api.POST("/hotels/:id/reviews", auth, h.Hotels.AddReview)
	api.POST("/hotels/:id/images", admin, h.Hotels.UploadImages)

	api.GET("/rooms", h.Hotels.SearchRooms)
	api.GET("/rooms/:roomId/calendar", h.Bookings.RoomCalendar)

	bookings := api.Group("/bookings", auth)
	bookings.GET("", h.Bookings.GetMyBookings)
	bookings.POST("", h.Bookings.CreateBooking)
	bookings.POST("/availability", h.Bookings.CheckAvailability)
	bookings.GET("/:id", h.Bookings.GetBooking)
	bookings.PUT("/:id/status", h.Bookings.UpdateStatus)
	bookings.DELETE("/:id", h.Bookings.CancelBooking)

	api.POST("/contact", h.Contacts.Submit)
	contact := api.Group("/contact", admin)
	contact.GET("", h.Contacts.List)
	contact.GET("/:id", h.Contacts.Get)
	contact.PUT("/:id/status", h.Contacts.UpdateStatus)
	contact.POST("/:id/response", h.Contacts.Respond)

	users := api.Group("/users", admin)
	users.GET("", h.Users.GetUsers)
	users.GET("/:id", h.Users.GetUser)
	users.PUT("/:id/status", h.Users.UpdateStatus)
	users.PUT("/:id/role", h.Users.UpdateRole)
	users.DELETE("/:id", h.Users.DeleteUser)

	adminGroup := api.Group("/admin", admin)
	adminGroup.GET("/overview", h.Admin.Overview)
	adminGroup.GET("/hotels", h.Hotels.ListAllHotels)
	adminGroup.GET("/users", h.Admin.GetUsers)
	adminGroup.GET("/bookings", h.Bookings.ListAllBookings)
	adminGroup.DELETE("/bookings/:id", h.Bookings.DeleteBooking)
}
