package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/client"
	"atelier-backoffice-api/internal/database"
	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/handler"
	"atelier-backoffice-api/internal/metrics"
	"atelier-backoffice-api/internal/middleware"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/service"
)

// Config holds everything the router needs
type Config struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	JWTSecret string
	TokenTTL  time.Duration
	BasePath  string
	Metrics   *metrics.Metrics
	S3Client  *client.S3Client
	Redis     *redis.Client
}

// Setup builds the gin engine with all routes and dependencies wired
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	clientRepo := repository.NewClientRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)
	phaseRepo := repository.NewPhaseRepository(cfg.DB)
	profileRepo := repository.NewProfileRepository(cfg.DB)
	expenseRepo := repository.NewExpenseRepository(cfg.DB)
	investmentRepo := repository.NewInvestmentRepository(cfg.DB)
	purgeRepo := repository.NewPhotoPurgeRepository(cfg.DB)

	// Storage is optional; proof photo upload fails cleanly without it
	var storage service.ProofStorage
	if cfg.S3Client != nil {
		storage = cfg.S3Client
	}
	var resolver service.PhotoURLResolver
	if cfg.S3Client != nil {
		resolver = cfg.S3Client
	}

	// Services
	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.Logger)
	staffService := service.NewStaffService(profileRepo, phaseRepo, cfg.Logger)
	clientService := service.NewClientService(clientRepo, projectRepo, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, clientRepo, activityRepo, phaseRepo, expenseRepo, purgeRepo, resolver, cfg.Metrics, cfg.Logger)
	activityService := service.NewActivityService(activityRepo, projectRepo, resolver, cfg.Logger)
	phaseService := service.NewPhaseService(phaseRepo, profileRepo, purgeRepo, storage, cfg.Metrics, cfg.Logger)
	financeService := service.NewFinanceService(expenseRepo, investmentRepo, projectRepo, cfg.Logger)
	dashboardService := service.NewDashboardService(projectRepo, clientRepo, phaseRepo, expenseRepo, cfg.Redis, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	staffHandler := handler.NewStaffHandler(staffService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	activityHandler := handler.NewActivityHandler(activityService)
	phaseHandler := handler.NewPhaseHandler(phaseService)
	financeHandler := handler.NewFinanceHandler(financeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Health and metrics (no auth)
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthCheck)

		api.POST("/auth/login", authHandler.Login)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.JWTSecret, profileRepo))
		{
			authenticated.GET("/auth/me", authHandler.Me)

			office := authenticated.Group("")
			office.Use(middleware.RequireRoles(domain.RoleDirection, domain.RoleAssistance))
			{
				office.GET("/clients", clientHandler.List)
				office.POST("/clients", clientHandler.Create)
				office.GET("/clients/:clientId", clientHandler.Get)
				office.GET("/clients/:clientId/releve", clientHandler.Statement)
				office.PUT("/clients/:clientId", clientHandler.Update)

				office.GET("/projets", projectHandler.List)
				office.POST("/projets", projectHandler.Create)
				office.GET("/projets/archives", projectHandler.Archives)
				office.GET("/projets/:projectId", projectHandler.Get)
				office.POST("/projets/:projectId/paiements", projectHandler.RecordPayment)
				office.GET("/projets/:projectId/activites", activityHandler.ListByProject)

				office.POST("/activites", activityHandler.Create)
				office.GET("/activites/:activityId", activityHandler.Get)
				office.GET("/activites/:activityId/phases", phaseHandler.ListByActivity)

				office.POST("/phases", phaseHandler.Create)
				office.PATCH("/phases/:phaseId/expert", phaseHandler.AssignExpert)
				office.POST("/phases/:phaseId/relance", phaseHandler.Relaunch)

				office.GET("/staff/experts", staffHandler.ListExperts)
			}

			direction := authenticated.Group("")
			direction.Use(middleware.RequireRoles(domain.RoleDirection))
			{
				direction.DELETE("/clients/:clientId", clientHandler.Delete)
				direction.DELETE("/projets/:projectId", projectHandler.Delete)
				direction.PATCH("/projets/:projectId/urgence", projectHandler.SetUrgency)
				direction.PATCH("/projets/:projectId/statut", projectHandler.SetStatus)

				direction.POST("/staff", staffHandler.Enroll)
				direction.GET("/staff", staffHandler.List)
				direction.GET("/staff/:staffId", staffHandler.Get)
				direction.PUT("/staff/:staffId", staffHandler.Update)
				direction.DELETE("/staff/:staffId", staffHandler.Remove)

				direction.POST("/depenses", financeHandler.RecordExpense)
				direction.GET("/depenses", financeHandler.ListExpenses)
				direction.GET("/projets/:projectId/depenses", financeHandler.ListProjectExpenses)
				direction.POST("/investissements", financeHandler.CreateInvestment)
				direction.GET("/investissements", financeHandler.ListInvestments)
				direction.POST("/investissements/:investmentId/abondements", financeHandler.TopUpInvestment)
				direction.GET("/finance/resume", financeHandler.Summary)

				direction.GET("/dashboard/direction", dashboardHandler.Direction)
			}

			expert := authenticated.Group("")
			expert.Use(middleware.RequireRoles(domain.RoleExpert))
			{
				// static route must come before the dynamic one
				expert.GET("/phases/mes-phases", phaseHandler.MyPhases)
				expert.POST("/phases/:phaseId/photos", phaseHandler.AttachProof)
				expert.GET("/dashboard/expert", dashboardHandler.Expert)
			}

			// Any authenticated role can view a phase or move its progress;
			// the service enforces who may do what per transition
			authenticated.GET("/phases/:phaseId", phaseHandler.Get)
			authenticated.GET("/phases/:phaseId/justificatif", phaseHandler.DownloadProof)
			authenticated.PATCH("/phases/:phaseId/avancement", phaseHandler.SetProgress)
		}
	}

	return r
}

func healthCheck(c *gin.Context) {
	status := gin.H{
		"status":   "ok",
		"database": database.IsConnected(),
	}
	c.JSON(200, status)
}
