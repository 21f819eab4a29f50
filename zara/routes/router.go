package routes

import (
	"net/http"
	"time"

	"zara/zara/controllers"
	"zara/zara/services/auth"
	"zara/zara/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	// RequestTimeout bounds every REST request. The websocket is exempt.
	RequestTimeout = 180 * time.Second
	MaxBodyBytes   = 50 << 20
)

type Deps struct {
	Tokens *auth.TokenService
	Auth   *controllers.AuthController
	User   *controllers.UserController
	Chats  *controllers.ChatsController
	Chat   *controllers.ChatController
	Health *controllers.HealthController
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestSize(MaxBodyBytes))

	HealthRoutes(r, d.Health)
	r.Route("/api", func(api chi.Router) {
		api.Get("/health", d.Health.HealthCheck)
		AuthRoutes(api, d.Auth)
		api.Mount("/user", UserRoutes(d.User, d.Tokens))
		api.Mount("/chats", ChatsRoutes(d.Chats, d.Tokens))
		api.Mount("/chat", ChatRoutes(d.Chat, d.Tokens))
	})
	return r
}
