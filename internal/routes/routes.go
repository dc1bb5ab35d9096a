package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/config"
	"github.com/xyz-asif/gohotels/internal/features/auth"
	"github.com/xyz-asif/gohotels/internal/features/bookings"
	"github.com/xyz-asif/gohotels/internal/features/hotels"
	"github.com/xyz-asif/gohotels/internal/features/myhotels"
	"github.com/xyz-asif/gohotels/internal/pkg/cloudinary"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/payment"
	"github.com/xyz-asif/gohotels/internal/pkg/ratelimit"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes builds the shared services and mounts every feature under /api.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api")

	tokenCfg := token.DefaultConfig(cfg.JWTSecret)
	if cfg.JWTExpire > 0 {
		tokenCfg.Expiry = time.Duration(cfg.JWTExpire) * time.Hour
	}
	issuer := token.NewIssuer(tokenCfg)
	limiter := ratelimit.New(cfg.RateLimitAuth, time.Minute)

	hotelStore := hotels.NewRepository(db)

	// Uploads and payments answer 500 until their credentials are configured.
	var uploader myhotels.ImageUploader
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		logger.Warn("image uploads disabled: %v", err)
	} else {
		uploader = cld
	}

	var processor payment.Processor
	stripe, err := payment.NewStripeProcessor(cfg.StripeAPIKey)
	if err != nil {
		logger.Warn("payments disabled: %v", err)
	} else {
		processor = stripe
	}

	bookingService := bookings.NewService(hotelStore, processor, bookings.Options{
		Currency:       cfg.PaymentCurrency,
		VerifyPayments: cfg.VerifyPayments,
	})

	auth.RegisterRoutes(api, db, cfg, issuer, limiter)
	hotelsGroup := hotels.RegisterRoutes(api, hotelStore)
	myhotels.RegisterRoutes(api, hotelStore, uploader, issuer)
	bookings.RegisterRoutes(api, hotelsGroup, bookingService, issuer)
}
