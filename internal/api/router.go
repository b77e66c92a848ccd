package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/booking"
	bookingHttp "github.com/renishkhadka4/Sajilofinder/internal/booking/http"
	"github.com/renishkhadka4/Sajilofinder/internal/chat"
	chatHttp "github.com/renishkhadka4/Sajilofinder/internal/chat/http"
	"github.com/renishkhadka4/Sajilofinder/internal/feedback"
	feedbackHttp "github.com/renishkhadka4/Sajilofinder/internal/feedback/http"
	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	hostelHttp "github.com/renishkhadka4/Sajilofinder/internal/hostel/http"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	notifyHttp "github.com/renishkhadka4/Sajilofinder/internal/notify/http"
	"github.com/renishkhadka4/Sajilofinder/internal/payment"
	paymentHttp "github.com/renishkhadka4/Sajilofinder/internal/payment/http"
	"github.com/renishkhadka4/Sajilofinder/internal/report"
	reportHttp "github.com/renishkhadka4/Sajilofinder/internal/report/http"
	"github.com/renishkhadka4/Sajilofinder/internal/room"
	roomHttp "github.com/renishkhadka4/Sajilofinder/internal/room/http"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

// Config bundles everything the router needs. Assembled by the app
// container.
type Config struct {
	AllowOrigins []string
	UploadDir    string

	UserService     user.Service
	HostelService   hostel.Service
	RoomService     room.Service
	BookingService  booking.Service
	PaymentService  payment.Service
	FeedbackService feedback.Service
	ChatService     chat.Service
	NotifyService   notify.Service
	ReportService   report.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for
// every module.
func NewRouter(params Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = params.AllowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Uploaded hostel and room images are served directly from disk.
	r.Static("/uploads", params.UploadDir)

	authMiddleware := auth.AuthRequired(params.JWTManager)
	studentOnly := RequireRole(user.RoleStudent)
	ownerOnly := RequireRole(user.RoleHostelOwner)

	authHandler := NewAuthHandler(params.UserService, params.JWTManager)
	hostelHandler := hostelHttp.NewHandler(params.HostelService)
	roomHandler := roomHttp.NewHandler(params.RoomService)
	bookingHandler := bookingHttp.NewHandler(params.BookingService)
	paymentHandler := paymentHttp.NewHandler(params.PaymentService)
	feedbackHandler := feedbackHttp.NewHandler(params.FeedbackService)
	chatHandler := chatHttp.NewHandler(params.ChatService)
	notifyHandler := notifyHttp.NewHandler(params.NotifyService)
	reportHandler := reportHttp.NewHandler(params.ReportService)

	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}
		v1.GET("/me", authMiddleware, authHandler.Me)

		hostelHttp.RegisterRoutes(v1, hostelHandler, authMiddleware, ownerOnly)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, ownerOnly)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, studentOnly, ownerOnly)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware, studentOnly)
		feedbackHttp.RegisterRoutes(v1, feedbackHandler, authMiddleware, studentOnly, ownerOnly)
		chatHttp.RegisterRoutes(v1, chatHandler, authMiddleware)
		notifyHttp.RegisterRoutes(v1, notifyHandler, authMiddleware)
		reportHttp.RegisterRoutes(v1, reportHandler, authMiddleware, ownerOnly)
	}

	return r
}
