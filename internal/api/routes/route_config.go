package routes

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/handlers"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	CrisisHandler    handlers.CrisisHandler
	VolunteerHandler handlers.VolunteerHandler
	DonationHandler  handlers.DonationHandler
	UpdateHandler    handlers.UpdateHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Accounts()
	c.Crisis()
	c.Volunteers()
	c.Donations()
	c.Updates()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Accounts() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	accounts := c.App.Group("/api/accounts")
	{
		accounts.Post("/register", c.UserHandler.Register)
		accounts.Get("/verify", c.UserHandler.VerifyEmail)
		accounts.Post("/login", c.UserHandler.Login)
		accounts.Get("/profile", auth, c.UserHandler.Me)
		accounts.Patch("/profile", auth, c.UserHandler.UpdateUser)
	}
}

func (c *Config) Crisis() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	posts := c.App.Group("/api/crisis/posts")
	posts.Post("", auth, c.CrisisHandler.CreatePost)
	posts.Get("", optional, c.CrisisHandler.GetPosts)
	posts.Get("/mine", auth, c.CrisisHandler.GetMyPosts)
	posts.Get("/:id", optional, c.CrisisHandler.GetPostDetails)
	posts.Patch("/:id", auth, c.CrisisHandler.UpdatePost)
	posts.Delete("/:id", auth, c.CrisisHandler.DeletePost)

	// admin review
	posts.Post("/:id/approve", auth, c.CrisisHandler.ApprovePost)
	posts.Post("/:id/reject", auth, c.CrisisHandler.RejectPost)

	posts.Post("/:id/sections", auth, c.CrisisHandler.AddSection)
}

func (c *Config) Volunteers() {
	volunteers := c.App.Group("/api/volunteers", c.Middleware.AuthMiddleware(c.JWTService))
	volunteers.Post("/apply", c.VolunteerHandler.Apply)
	volunteers.Get("/my-applications", c.VolunteerHandler.GetMyApplications)
	volunteers.Get("/crisis/:id", c.VolunteerHandler.GetApplicationsForPost)
	volunteers.Post("/:id/approve", c.VolunteerHandler.ApproveApplication)
	volunteers.Post("/:id/reject", c.VolunteerHandler.RejectApplication)
}

func (c *Config) Donations() {
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	donations := c.App.Group("/api/donations")
	donations.Post("/money/create", optional, c.DonationHandler.CreateMoneyDonation)
	donations.Post("/goods/create", optional, c.DonationHandler.CreateGoodsDonation)
	donations.Get("/crisis/:id/money", c.DonationHandler.GetMoneyDonations)
	donations.Get("/crisis/:id/goods", c.DonationHandler.GetGoodsDonations)
	donations.Get("/crisis/:id/summary", c.DonationHandler.GetDonationSummary)
	donations.Get("/my-donations", c.Middleware.AuthMiddleware(c.JWTService), c.DonationHandler.GetMyDonations)
}

func (c *Config) Updates() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	updates := c.App.Group("/api/updates")
	updates.Post("/create", auth, c.UpdateHandler.CreateUpdate)
	updates.Get("/crisis/:id", c.UpdateHandler.GetUpdatesForPost)
	updates.Get("/my-updates", auth, c.UpdateHandler.GetMyUpdates)
	updates.Get("/my-comments", auth, c.UpdateHandler.GetMyComments)

	// comments
	updates.Post("/comment/create", auth, c.UpdateHandler.CreateComment)
	updates.Patch("/comment/:id", auth, c.UpdateHandler.EditComment)
	updates.Delete("/comment/:id", auth, c.UpdateHandler.DeleteComment)

	updates.Get("/:id", c.UpdateHandler.GetUpdateDetails)
	updates.Get("/:id/comments", c.UpdateHandler.GetComments)
	updates.Patch("/:id", auth, c.UpdateHandler.EditUpdate)
	updates.Delete("/:id", auth, c.UpdateHandler.DeleteUpdate)
}
