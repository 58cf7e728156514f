package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/handlers"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/presenters"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/routes"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/mailing"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/storage"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/donation"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/jwt"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/update"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/user"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/volunteer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, cfg *utils.Config, log *logrus.Logger, s3 storage.ObjectStore, mailer mailing.Sender) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit:    storage.MaxUploadSize + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return presenters.HandleError(c, err.Error(), err)
		},
	})
	middlewares := middleware.NewMiddleware(cfg.CORSAllowOrigins)
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(cfg.LogDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Dhaka",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	crisisRepository := crisis.NewCrisisRepository(db)
	volunteerRepository := volunteer.NewVolunteerRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	updateRepository := update.NewUpdateRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	userService := user.NewUserService(userRepository, jwtService, s3, mailer, cfg.AppURL, log)
	crisisService := crisis.NewCrisisService(crisisRepository, s3, log)
	volunteerService := volunteer.NewVolunteerService(volunteerRepository, crisisRepository, mailer, log)
	donationService := donation.NewDonationService(donationRepository, crisisRepository, log)
	updateService := update.NewUpdateService(updateRepository, crisisRepository, volunteerRepository, s3, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	crisisHandler := handlers.NewCrisisHandler(crisisService, validator)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	updateHandler := handlers.NewUpdateHandler(updateService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		CrisisHandler:    crisisHandler,
		VolunteerHandler: volunteerHandler,
		DonationHandler:  donationHandler,
		UpdateHandler:    updateHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
