// zara/routes/auth.go
package routes

import (
	"net/http"

	"zara/zara/controllers"
	"zara/zara/utils/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuthRoutes adds /register and /login to r.
func AuthRoutes(r chi.Router, ctrl *controllers.AuthController) {
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(RequestTimeout))

		gr.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.RegisterRequest
			if err := decode(r, &req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			resp, err := ctrl.Register(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return resp, http.StatusCreated, nil
		}))

		gr.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.LoginRequest
			if err := decode(r, &req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			resp, err := ctrl.Login(r.Context(), req)
			if err != nil {
				return nil, statusFor(err), err
			}
			return resp, http.StatusOK, nil
		}))
	})
}
