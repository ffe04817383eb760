package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/middleware"
	"matchday-backend-go/internal/storage"
)

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is applied to the router in main before this is called.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	userService core.UserService,
	tournamentService core.TournamentService,
	matchService core.MatchService,
	voteService core.VoteService,
	selectionService core.SelectionService,
	paymentService core.PaymentService,
	uploader storage.ProofUploader,
) {
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)
	tournamentHandler := NewTournamentHandler(tournamentService, logger)
	matchHandler := NewMatchHandler(matchService, logger)
	voteHandler := NewVoteHandler(voteService, logger)
	selectionHandler := NewSelectionHandler(selectionService, logger)
	paymentHandler := NewPaymentHandler(paymentService, uploader, logger)

	apiV1 := router.Group("/api/v1")
	{
		// Anonymous registration endpoints. Everything else requires a token.
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/register/validate", authHandler.ValidateRegistration)
		}

		usersGroup := apiV1.Group("/users", authMW.VerifyToken())
		{
			usersGroup.GET("/me", userHandler.Me)
			usersGroup.GET("", userHandler.List)
			usersGroup.PUT("/:email/approve", userHandler.Approve)
			usersGroup.PUT("/:email/suspend", userHandler.Suspend)
			usersGroup.PUT("/:email/roles", userHandler.SetRoles)
		}

		tournamentsGroup := apiV1.Group("/tournaments", authMW.VerifyToken())
		{
			tournamentsGroup.POST("", tournamentHandler.Create)
			tournamentsGroup.GET("", tournamentHandler.List)
			tournamentsGroup.GET("/:id", tournamentHandler.Get)
			tournamentsGroup.PUT("/:id", tournamentHandler.Update)
		}

		matchesGroup := apiV1.Group("/matches", authMW.VerifyToken())
		{
			matchesGroup.POST("", matchHandler.Create)
			matchesGroup.GET("", matchHandler.List)
			matchesGroup.GET("/:id", matchHandler.Get)
			matchesGroup.PUT("/:id", matchHandler.Update)
			matchesGroup.PUT("/:id/status", matchHandler.SetStatus)

			matchesGroup.PUT("/:id/votes", voteHandler.Cast)
			matchesGroup.GET("/:id/votes", voteHandler.Board)

			matchesGroup.PUT("/:id/selection", selectionHandler.Save)
			matchesGroup.GET("/:id/selection", selectionHandler.View)
			matchesGroup.GET("/:id/selection/candidates", selectionHandler.Candidates)
			matchesGroup.POST("/:id/selection/publish", selectionHandler.Publish)
			matchesGroup.POST("/:id/selection/recall", selectionHandler.Recall)

			matchesGroup.GET("/:id/payments", paymentHandler.MatchPayments)
		}

		paymentsGroup := apiV1.Group("/payments", authMW.VerifyToken())
		{
			paymentsGroup.POST("/initiate", paymentHandler.Initiate)
			paymentsGroup.GET("/my", paymentHandler.My)
			paymentsGroup.POST("/:id/submit", paymentHandler.Submit)
			paymentsGroup.POST("/:id/verify", paymentHandler.Verify)
			paymentsGroup.POST("/:id/proof", paymentHandler.UploadProof)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1")
}
