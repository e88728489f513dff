package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/complianceos/complianceos/internal/logging"
	"github.com/complianceos/complianceos/internal/store"
)

// NewRouter builds the gin engine with CORS, request logging and all
// /api/v1 routes registered.
func NewRouter(s *store.Store, logger logging.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		corsConfig.AllowOrigins = corsOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	r.Use(cors.New(corsConfig))

	h := NewHandlers(s, logger)

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", h.Dashboard)
		v1.GET("/snapshot", h.ExportSnapshot)
		v1.PUT("/snapshot", h.ImportSnapshot)

		v1.GET("/customers", h.ListCustomers)
		v1.POST("/customers", h.CreateCustomer)
		v1.GET("/customers/:id", h.GetCustomer)
		v1.PUT("/customers/:id", h.UpdateCustomer)
		v1.DELETE("/customers/:id", h.DeleteCustomer)

		v1.GET("/questionnaires", h.ListQuestionnaires)
		v1.POST("/questionnaires", h.CreateQuestionnaire)
		v1.GET("/questionnaires/:id", h.GetQuestionnaire)
		v1.PUT("/questionnaires/:id", h.UpdateQuestionnaire)
		v1.DELETE("/questionnaires/:id", h.DeleteQuestionnaire)
		v1.GET("/questionnaires/:id/progress", h.QuestionnaireProgress)
		v1.PUT("/questionnaires/:id/questions/:questionID", h.UpdateQuestion)
		v1.POST("/questionnaires/:id/questions/:questionID/finalize", h.FinalizeQuestion)

		v1.GET("/answers", h.ListAnswers)
		v1.POST("/answers", h.CreateAnswer)
		v1.GET("/answers/search", h.SearchAnswers)
		v1.GET("/answers/suggest", h.SuggestAnswers)
		v1.GET("/answers/:id", h.GetAnswer)
		v1.PUT("/answers/:id", h.UpdateAnswer)
		v1.DELETE("/answers/:id", h.DeleteAnswer)

		v1.GET("/tasks", h.ListTasks)
		v1.POST("/tasks", h.CreateTask)
		v1.GET("/tasks/:id", h.GetTask)
		v1.PUT("/tasks/:id", h.UpdateTask)
		v1.DELETE("/tasks/:id", h.DeleteTask)
		v1.POST("/tasks/:id/evidence", h.AddEvidence)

		v1.GET("/obligations", h.ListObligations)
		v1.POST("/obligations", h.CreateObligation)
		v1.GET("/obligations/upcoming", h.UpcomingObligations)
		v1.GET("/obligations/timeline", h.ObligationTimeline)
		v1.GET("/obligations/:id", h.GetObligation)
		v1.PUT("/obligations/:id", h.UpdateObligation)
		v1.DELETE("/obligations/:id", h.DeleteObligation)

		v1.GET("/agreements", h.ListAgreements)
		v1.POST("/agreements", h.CreateAgreement)
		v1.GET("/agreements/:id", h.GetAgreement)
		v1.PUT("/agreements/:id", h.UpdateAgreement)
		v1.DELETE("/agreements/:id", h.DeleteAgreement)
	}

	return r
}

// requestLogger logs one line per request through the project logger.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
