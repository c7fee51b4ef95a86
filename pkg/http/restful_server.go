package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/db"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
)

type RestfulServer struct {
	Server   *gin.Engine
	PDM      *pdm.PDM
	DB       *db.DB              // optional, pinged by /api/health
	Limiters *pdm.ClientLimiters // nil disables rate limiting
}

func (rs *RestfulServer) CheckClientLimiter(clientID string) bool {
	if rs.Limiters == nil {
		return true
	}
	return rs.Limiters.Allow(clientID)
}

// Setup registers all routes. /api routes share CORS and per-client rate
// limiting; probes and /metrics are not limited.
func (rs *RestfulServer) Setup() {
	rs.Server.Use(CORS())

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := rs.Server.Group("/api", rs.RateLimit())
	{
		api.GET("/health", rs.APIHealth)
		api.GET("/sensor-data", rs.GetSensorData)
		api.GET("/predictions", rs.GetPredictions)
		api.POST("/predictions", rs.PostPredictions)
		api.GET("/alerts", rs.GetAlerts)
		api.GET("/historical/:days", rs.GetHistorical)
		api.GET("/export/:days", rs.GetExport)
		api.GET("/maintenance/:days", rs.GetMaintenance)
		api.POST("/maintenance", rs.PostMaintenance)
		api.POST("/train-model", rs.PostTrainModel)
		api.GET("/model", rs.GetModel)
	}
}

// statusFor maps the error taxonomy onto HTTP codes: caller mistakes are 400,
// everything else is 500.
func statusFor(err error) int {
	var rangeErr *common.RangeError
	var shapeErr *common.DataShapeError
	switch {
	case errors.As(err, &rangeErr), errors.As(err, &shapeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
