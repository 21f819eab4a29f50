package routes

import (
	"zara/zara/controllers"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(r chi.Router, ctrl *controllers.HealthController) {
	r.Get("/", ctrl.HealthCheck)
	r.Get("/health", ctrl.HealthCheck)
}
