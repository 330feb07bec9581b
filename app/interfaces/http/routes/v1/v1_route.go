package v1

import (
	"github.com/gin-gonic/gin"
	"vsguard.ai/vision-gateway/app/interfaces/http/routes/v1/broker"
)

type V1Route struct {
	brokerRoute *broker.BrokerRoute
}

func NewV1Route(brokerRoute *broker.BrokerRoute) *V1Route {
	return &V1Route{
		brokerRoute: brokerRoute,
	}
}

func (route *V1Route) RegisterRouter(router *gin.RouterGroup) {
	v1 := router.Group("/v1")
	route.brokerRoute.RegisterRouter(v1.Group("/broker"))
}
