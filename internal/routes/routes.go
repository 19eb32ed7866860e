package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/therisers/backoffice/internal/config"
	"github.com/therisers/backoffice/internal/handlers"
	"github.com/therisers/backoffice/internal/middleware"
	"github.com/therisers/backoffice/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	branchHandler *handlers.BranchHandler,
	applicantHandler *handlers.ApplicantHandler,
	paymentHandler *handlers.PaymentHandler,
	statsHandler *handlers.StatsHandler,
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	jwt := middleware.JWTProtected(cfg)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	staff := middleware.RoleRequired(models.RoleAdmin, models.RoleManager, models.RoleSubAdmin)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	login := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	users := api.Group("/users")
	users.Post("/login", login, userHandler.Login)
	users.Post("/registerManager", jwt, adminOnly, userHandler.RegisterManager)
	users.Post("/addManager", jwt, adminOnly, userHandler.AddManager)
	users.Get("/profile", jwt, userHandler.Profile)
	users.Get("/", jwt, adminOnly, userHandler.List)
	users.Get("/:id", jwt, staff, userHandler.Get)
	users.Post("/:id", jwt, adminOnly, userHandler.Update)
	users.Put("/:id", jwt, adminOnly, userHandler.Update)
	users.Delete("/:id", jwt, adminOnly, userHandler.Delete)

	subAdmins := api.Group("/sub-admins", jwt, adminOnly)
	subAdmins.Post("/", userHandler.CreateSubAdmin)
	subAdmins.Get("/", userHandler.ListSubAdmins)
	subAdmins.Put("/:id", userHandler.Update)
	subAdmins.Delete("/:id", userHandler.Delete)

	branches := api.Group("/branches", jwt)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", staff, branchHandler.List)
	branches.Get("/:id", staff, branchHandler.Get)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)
	branches.Put("/:id/assignManager", adminOnly, branchHandler.AssignManager)
	branches.Put("/:id/removeManager", adminOnly, branchHandler.RemoveManager)
	branches.Get("/:id/stats", staff, branchHandler.Stats)

	manager := api.Group("/manager", jwt)
	manager.Get("/my-branch", staff, branchHandler.MyBranch)

	applicants := api.Group("/applicants", jwt, staff)
	applicants.Post("/", applicantHandler.Create)
	applicants.Get("/", applicantHandler.List)
	applicants.Get("/:id", applicantHandler.Get)
	applicants.Put("/:id", applicantHandler.Update)
	applicants.Delete("/:id", applicantHandler.Delete)

	applicants.Post("/:id/documents", applicantHandler.AttachDocument)
	applicants.Delete("/:id/documents/:docId", applicantHandler.DetachDocument)

	applicants.Put("/:id/education", applicantHandler.UpdateEducation)

	applicants.Post("/:id/processing", applicantHandler.UpdateProcessing)
	applicants.Post("/:id/processing/deleteNote", applicantHandler.DeleteNote)

	applicants.Get("/:id/agreedAmount", applicantHandler.GetAgreement)
	applicants.Put("/:id/agreedAmount", applicantHandler.UpdateAgreement)

	applicants.Post("/:id/payments", paymentHandler.Add)
	applicants.Get("/:id/payments", paymentHandler.List)
	applicants.Delete("/:id/payments/:paymentId", paymentHandler.Delete)
	applicants.Delete("/:id/payments/:batchId/deleteAll", paymentHandler.DeleteBatch)

	stats := api.Group("/stats", jwt)
	stats.Get("/", staff, statsHandler.Branch)
	stats.Get("/admin", adminOnly, statsHandler.Admin)
	stats.Get("/branch-per-currency", adminOnly, statsHandler.RevenuePerBranch)

	api.Get("/search", jwt, staff, searchHandler.Search)
}
