package api

import (
	"database/sql"
	"fmt"
	"stockswap/internal/logger"
	"stockswap/internal/repository"
	"stockswap/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// requestBudget bounds one whole recommendation flow so an unresponsive
// upstream cannot stall the extension popup indefinitely.
const requestBudget = 30 * time.Second

type ApiHandler struct {
	Db                    *sql.DB
	RecommendationService service.RecommendationService
	SavingsRepository     repository.SavingsRepository
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stockswap"})
	})
	router.POST("/recommendation", m.recommendation)
	router.POST("/savings", m.trackSavings)
	router.GET("/savings", m.getSavings)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	start := time.Now().UTC()
	ctx.Next()
	logger.Info(
		"%s %s -> %d (%dms)",
		ctx.Request.Method,
		ctx.Request.URL.Path,
		ctx.Writer.Status(),
		time.Since(start).Milliseconds(),
	)
}
