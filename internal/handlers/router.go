package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kylo18/practice-exam-service/internal/config"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/services"
	"github.com/kylo18/practice-exam-service/internal/utils"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type HandlerManager struct {
	examHandler         *PracticeExamHandler
	resultHandler       *ResultHandler
	distributionHandler *DistributionHandler
	settingHandler      *SettingHandler
	authMiddleware      *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		examHandler:         NewPracticeExamHandler(serviceManager.PracticeExam(), validator, logger),
		resultHandler:       NewResultHandler(serviceManager.Result(), serviceManager.Export(), validator, logger),
		distributionHandler: NewDistributionHandler(serviceManager.Distribution(), validator, logger),
		settingHandler:      NewSettingHandler(serviceManager.Setting(), validator, logger),
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		exams := v1.Group("/practice-exams")
		{
			exams.POST("", hm.examHandler.CreateExam)
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.POST("/:id/submit", hm.resultHandler.SubmitExam)
			exams.GET("/:id/results", hm.resultHandler.GetExamResults)
		}

		results := v1.Group("/results")
		{
			results.GET("", hm.resultHandler.GetMyResults)

			// Cross-user reporting is restricted to teaching staff.
			results.GET("/export",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleProgramChair, models.RoleDean),
				hm.resultHandler.ExportResults)
		}

		subjects := v1.Group("/subjects")
		{
			subjects.GET("/:id/pool", hm.examHandler.GetPoolAvailability)
		}

		distributions := v1.Group("/distributions")
		{
			distributions.GET("", hm.distributionHandler.ListDistributions)
			distributions.GET("/:id", hm.distributionHandler.GetDistribution)
			distributions.POST("",
				hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleProgramChair, models.RoleDean),
				hm.distributionHandler.CreateDistribution)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/:subject_id", hm.settingHandler.GetSetting)
			settings.PUT("/:subject_id", hm.settingHandler.UpsertSetting)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "practice-exam-service",
		})
	})
}
