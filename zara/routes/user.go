package routes

import (
	"net/http"

	"zara/zara/controllers"
	"zara/zara/middlewares"
	"zara/zara/services/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func UserRoutes(ctrl *controllers.UserController, tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(RequestTimeout))
		gr.Use(middlewares.AuthMiddleware(tokens))

		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, _ := middlewares.UserID(r.Context())
			user, err := ctrl.GetUser(r.Context(), id)
			if err != nil {
				return nil, statusFor(err), err
			}
			return user, http.StatusOK, nil
		}))
	})

	return r
}
