package broker

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/domain/healthcheck"
	"vsguard.ai/vision-gateway/app/domain/session"
	"vsguard.ai/vision-gateway/app/interfaces/http/responses"
)

type BrokerRoute struct {
	registry           *session.Registry
	resultCache        *analysis.ResultCache
	healthcheckService *healthcheck.HealthcheckCrontabService
}

func NewBrokerRoute(registry *session.Registry, resultCache *analysis.ResultCache, healthcheckService *healthcheck.HealthcheckCrontabService) *BrokerRoute {
	return &BrokerRoute{
		registry:           registry,
		resultCache:        resultCache,
		healthcheckService: healthcheckService,
	}
}

func (route *BrokerRoute) RegisterRouter(router *gin.RouterGroup) {
	router.GET("/status", route.GetStatus)
}

// GetStatus
// @Summary Broker status
// @Description Reports live client groups, sessions, cache entries and collaborator health.
// @Tags Broker
// @Produce json
// @Success 200 {object} responses.GeneralResponse[responses.BrokerStatus]
// @Router /v1/broker/status [get]
func (route *BrokerRoute) GetStatus(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[responses.BrokerStatus]{
		Status: responses.ResponseCodeOk,
		Result: responses.BrokerStatus{
			Clients:      route.registry.ClientCount(),
			Sessions:     route.registry.SessionCount(),
			CacheEntries: route.resultCache.Entries(reqCtx.Request.Context()),
			Healthy:      route.healthcheckService.Healthy(),
		},
	})
}
