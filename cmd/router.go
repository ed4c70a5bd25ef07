package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/health-widget/internal/handler"
	"github.com/angeloszaimis/health-widget/internal/metrics"
)

func setupRouter(widgetHandler *handler.WidgetHandler, metricsCollector *metrics.Collector) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", widgetHandler.Page).Methods(http.MethodGet)
	router.HandleFunc("/widget", widgetHandler.Fragment).Methods(http.MethodGet)
	router.HandleFunc("/api/state", widgetHandler.State).Methods(http.MethodGet)
	router.Handle("/metrics", metricsCollector.PrometheusHandler()).Methods(http.MethodGet)
	router.HandleFunc("/metrics.json", metricsCollector.Handler()).Methods(http.MethodGet)

	return router
}
