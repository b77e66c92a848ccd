package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/renishkhadka4/Sajilofinder/internal/api"
	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/booking"
	"github.com/renishkhadka4/Sajilofinder/internal/chat"
	"github.com/renishkhadka4/Sajilofinder/internal/config"
	"github.com/renishkhadka4/Sajilofinder/internal/db"
	"github.com/renishkhadka4/Sajilofinder/internal/feedback"
	"github.com/renishkhadka4/Sajilofinder/internal/hostel"
	"github.com/renishkhadka4/Sajilofinder/internal/notify"
	"github.com/renishkhadka4/Sajilofinder/internal/payment"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/storage"
	"github.com/renishkhadka4/Sajilofinder/internal/report"
	"github.com/renishkhadka4/Sajilofinder/internal/room"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Dispatcher *notify.Dispatcher

	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewContainer connects infrastructure, runs migrations and wires every
// module in dependency order.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// Infrastructure
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Migrate(cfg.DBDSN); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	redisClient, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	local, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("init upload storage: %w", err)
	}
	images := storage.NewImageStore(local)

	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		if err != nil {
			pool.Close()
			redisClient.Close()
			return nil, fmt.Errorf("init smtp mailer: %w", err)
		}
	} else {
		mailer = notify.LogMailer{}
	}
	dispatcher := notify.NewDispatcher(mailer)

	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	tokenStore := user.NewRedisTokenStore(redisClient)
	userService := user.NewService(userRepo, passwordHasher, tokenStore, dispatcher, cfg.OTPTTL, cfg.ResetTokenTTL)

	// Notification Module
	notifyRepo := notify.NewPgxRepository(pool)
	notifyService := notify.NewService(notifyRepo)

	// Hostel Module
	hostelRepo := hostel.NewPgxRepository(pool)
	hostelService := hostel.NewService(hostelRepo, images)

	// Room Module
	roomRepo := room.NewPgxRepository(pool)
	roomService := room.NewService(roomRepo, hostelService, images)

	// Booking Module. The payment repository doubles as the booking
	// side's read-only view of what was paid.
	paymentRepo := payment.NewPgxRepository(pool)
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, roomService, hostelService, userService, paymentRepo, notifyService, dispatcher)

	// Payment Module
	verifier := payment.NewKhaltiClient(cfg.KhaltiBaseURL, cfg.KhaltiSecretKey, cfg.KhaltiTimeout)
	paymentService := payment.NewService(paymentRepo, bookingRepo, verifier, notifyService, dispatcher)

	// Feedback Module
	feedbackRepo := feedback.NewPgxRepository(pool)
	feedbackService := feedback.NewService(feedbackRepo, hostelService, userService, notifyService, dispatcher)

	// Chat Module
	chatRepo := chat.NewPgxRepository(pool)
	chatService := chat.NewService(chatRepo, hostelService, userService, notifyService, dispatcher)

	// Report Module
	reportRepo := report.NewPgxRepository(pool)
	reportService := report.NewService(reportRepo)

	// Router
	router := api.NewRouter(api.Config{
		AllowOrigins:    corsOrigins(cfg),
		UploadDir:       cfg.UploadDir,
		UserService:     userService,
		HostelService:   hostelService,
		RoomService:     roomService,
		BookingService:  bookingService,
		PaymentService:  paymentService,
		FeedbackService: feedbackService,
		ChatService:     chatService,
		NotifyService:   notifyService,
		ReportService:   reportService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Dispatcher: dispatcher,
		pool:       pool,
		redis:      redisClient,
	}, nil
}

// Close releases infrastructure held by the container. The dispatcher
// is drained first so in-flight notification mail still goes out.
func (c *Container) Close() {
	c.Dispatcher.Shutdown()
	c.redis.Close()
	c.pool.Close()
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		return strings.Split(cfg.ProdOrigins, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
