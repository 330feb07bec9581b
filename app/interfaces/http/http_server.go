package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"vsguard.ai/vision-gateway/app/interfaces/http/middleware"
	v1 "vsguard.ai/vision-gateway/app/interfaces/http/routes/v1"
	"vsguard.ai/vision-gateway/app/interfaces/ws"
	"vsguard.ai/vision-gateway/app/utils/logger"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

type HttpServer struct {
	engine    *gin.Engine
	v1Route   *v1.V1Route
	wsHandler *ws.Handler
}

func NewHttpServer(v1Route *v1.V1Route, wsHandler *ws.Handler) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:    gin.New(),
		v1Route:   v1Route,
		wsHandler: wsHandler,
	}
	server.engine.Use(
		gin.Recovery(),
		middleware.LoggerMiddleware(logger.GetLogger()),
		middleware.CORS(),
	)
	server.engine.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, "ok")
	})
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.PORT
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterRouter(root)
	httpServer.wsHandler.RegisterRouter(root)
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
