package main

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/domain/healthcheck"
	"vsguard.ai/vision-gateway/app/domain/session"
	"vsguard.ai/vision-gateway/app/infrastructure/cache"
	"vsguard.ai/vision-gateway/app/infrastructure/vision"
	"vsguard.ai/vision-gateway/app/interfaces/http"
	"vsguard.ai/vision-gateway/app/interfaces/http/routes/v1"
	"vsguard.ai/vision-gateway/app/interfaces/http/routes/v1/broker"
	"vsguard.ai/vision-gateway/app/interfaces/ws"
	"vsguard.ai/vision-gateway/app/utils/httpclients/detector"
	"vsguard.ai/vision-gateway/app/utils/httpclients/ocr"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

type Application struct {
	HttpServer *http.HttpServer
	Dispatcher *analysis.Dispatcher
}

func (application *Application) Start() {
	defer application.Dispatcher.Close()
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	detector.Init()
	ocr.Init()
}

func CreateApplication() *Application {
	env := &environment_variables.EnvironmentVariables

	cacheService := cache.NewCacheService()
	resultCache := analysis.NewResultCache(cacheService, time.Duration(env.RESULT_CACHE_TTL_SECONDS)*time.Second)

	pipeline := analysis.NewService(
		vision.NewDetectorProvider(detector.NewDetectorClient()),
		vision.NewOcrProvider(ocr.NewOcrClient()),
		vision.NewDescriber(),
	)
	dispatcher := analysis.NewDispatcher(pipeline, resultCache, env.ANALYSIS_WORKER_COUNT, env.ANALYSIS_QUEUE_DEPTH)

	registry := session.NewRegistry()
	wsHandler := ws.NewHandler(registry, resultCache, dispatcher)

	healthcheckService := healthcheck.NewService(detector.NewDetectorClient(), ocr.NewOcrClient())
	healthcheckService.Start(context.Background(), crontab.New())

	brokerRoute := broker.NewBrokerRoute(registry, resultCache, healthcheckService)
	httpServer := http.NewHttpServer(v1.NewV1Route(brokerRoute), wsHandler)

	return &Application{
		HttpServer: httpServer,
		Dispatcher: dispatcher,
	}
}

func main() {
	CreateApplication().Start()
}
