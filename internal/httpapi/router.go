// Package httpapi exposes the personalization service over HTTP with gin.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/personalize"
)

type RouterConfig struct {
	Service     *personalize.Service
	Logger      *logger.Logger
	CORSOrigins []string

	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", HealthCheck)
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	h := NewHandler(log, cfg.Service)

	v1 := router.Group("/v1")
	{
		// Pure scoring, nothing is stored.
		v1.POST("/mastery/score", h.ScoreMastery)
		v1.POST("/engagement/score", h.ScoreEngagement)
		v1.POST("/vark/update", h.UpdateVARK)
		v1.GET("/vark/survey", h.SurveyQuestions)
	}

	students := v1.Group("/students/:id")
	{
		students.POST("/mastery", h.RecordMastery)
		students.POST("/engagement", h.RecordEngagement)
		students.GET("/profile", h.GetProfile)
		students.POST("/profile", h.ApplyLearningEvent)
		students.GET("/profile/history", h.ProfileHistory)
		students.POST("/profile/survey", h.SubmitSurvey)
		students.POST("/feed", h.Feed)
		students.POST("/content/:contentId/seen", h.MarkSeen)
		students.GET("/gaps", h.Gaps)
		students.POST("/practice", h.StartPractice)
		students.GET("/sessions", h.ListSessions)
	}

	sessions := v1.Group("/sessions/:id")
	{
		sessions.GET("", h.GetSession)
		sessions.POST("/answers", h.SubmitAnswer)
		sessions.POST("/finish", h.FinishPractice)
	}

	return router
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
