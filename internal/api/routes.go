// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"tournament-planner/internal/middleware"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(services.Auth))
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.POST("/forgot-password", HandleForgotPassword(services.Auth))
		auth.POST("/reset-password", HandleResetPassword(services.Auth))
		auth.POST("/verify-email", HandleVerifyEmail(services.Auth))
	}
}

// RegisterUserRoutes registers crew/TO account routes
func RegisterUserRoutes(router *gin.RouterGroup, services *services.Container) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth(services.Auth))
	{
		users.GET("/me", HandleGetCurrentUser(services.User))
		users.PUT("/me", HandleUpdateProfile(services.User))
		users.PUT("/me/password", HandleChangePassword(services.Auth))
	}
}

// RegisterEventRoutes registers the Event Controller's routes
func RegisterEventRoutes(router *gin.RouterGroup, services *services.Container) {
	events := router.Group("/events")
	{
		events.GET("", HandleListActiveEvents(services))
		events.GET("/:id", HandleGetEvent(services))
		events.GET("/:id/standings", HandleGetStandings(services))

		events.Use(middleware.RequireAuth(services.Auth))
		events.POST("", middleware.RequireTO(), HandleCreateEvent(services.Event))
		events.POST("/:id/interest", middleware.RequireTO(), HandleOpenInterest(services.Event))
		events.POST("/:id/registration", middleware.RequireTO(), HandleOpenRegistration(services.Event))
		events.POST("/:id/lock-lists", middleware.RequireTO(), HandleLockLists(services))
		events.POST("/:id/finish", middleware.RequireTO(), HandleFinishEvent(services))
	}
}

// RegisterRegistrationRoutes registers the Registration Controller's routes
func RegisterRegistrationRoutes(router *gin.RouterGroup, services *services.Container) {
	events := router.Group("/events/:id/registrations")
	{
		events.GET("", HandleListRegistrations(services.Registration))
		events.POST("/interest", HandleSubmitInterest(services.Registration))
		events.POST("/list", HandleSubmitList(services))

		events.Use(middleware.RequireAuth(services.Auth))
		events.POST("/:playerId/approve", middleware.RequireTO(), HandleApproveRegistration(services))
		events.POST("/:playerId/relegate", middleware.RequireTO(), HandleRelegateRegistration(services.Registration))
		events.POST("/:playerId/reject", middleware.RequireTO(), HandleRejectRegistration(services.Registration))
		events.POST("/:playerId/drop", middleware.RequireTO(), HandleDropRegistration(services.Registration))
	}
}

// RegisterRoundRoutes registers the Round Controller's routes
func RegisterRoundRoutes(router *gin.RouterGroup, services *services.Container) {
	events := router.Group("/events/:id/rounds")
	events.Use(middleware.RequireAuth(services.Auth))
	{
		events.POST("", middleware.RequireTO(), HandleStartRound(services))
		events.POST("/:roundId/repair", middleware.RequireTO(), HandleRepairRound(services))
		events.POST("/:roundId/complete", middleware.RequireTO(), HandleCompleteRound(services))
	}
}

// RegisterGameRoutes registers the Game Lifecycle's routes
func RegisterGameRoutes(router *gin.RouterGroup, services *services.Container) {
	games := router.Group("/games")
	games.Use(middleware.RequireAuth(services.Auth))
	{
		games.POST("/:id/submit", HandleSubmitResult(services.Game))
		games.POST("/:id/confirm", HandleConfirmResult(services.Game))
		games.POST("/:id/dispute", HandleDisputeResult(services.Game))
		games.POST("/:id/override", middleware.RequireTO(), HandleOverrideResult(services.Game))
		games.POST("/:id/adjust", middleware.RequireTO(), HandleAdjustResult(services.Game))
	}
}

// RegisterRitualRoutes registers the Ritual Engine's gate routes
func RegisterRitualRoutes(router *gin.RouterGroup, services *services.Container) {
	ritual := router.Group("/team-rounds/:teamRoundId")
	ritual.Use(middleware.RequireAuth(services.Auth))
	{
		ritual.POST("/roll", HandleSubmitRoll(services.Ritual))
		ritual.POST("/defender", HandleSubmitDefender(services.Ritual))
		ritual.POST("/attackers", HandleSubmitAttackers(services.Ritual))
		ritual.POST("/choice", HandleSubmitChoice(services.Ritual))
		ritual.POST("/pairings/:pairingId/pick", HandleSubmitLayoutMission(services))
		ritual.POST("/complete", middleware.RequireTO(), HandleCompleteRitual(services.Ritual))
	}
}

// RegisterAdminRoutes registers TO-only account administration routes
func RegisterAdminRoutes(router *gin.RouterGroup, services *services.Container) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(services.Auth))
	admin.Use(middleware.RequireTO())
	{
		admin.PUT("/users/:id/promote", HandlePromoteToTO(services.User))
	}
}
