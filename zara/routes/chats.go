// zara/routes/chats.go
package routes

import (
	"net/http"
	"strconv"

	"zara/zara/controllers"
	"zara/zara/middlewares"
	"zara/zara/services/auth"
	"zara/zara/utils/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func ChatsRoutes(ctrl *controllers.ChatsController, tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(RequestTimeout))
		gr.Use(middlewares.AuthMiddleware(tokens))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			chats, err := ctrl.ListChats(r.Context(), userID)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return chats, http.StatusOK, nil
		}))

		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.CreateChatRequest
			if r.ContentLength != 0 {
				if err := decode(r, &req); err != nil {
					return nil, http.StatusBadRequest, err
				}
			}
			userID, _ := middlewares.UserID(r.Context())
			chat, err := ctrl.CreateChat(r.Context(), userID, req.Title)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return chat, http.StatusCreated, nil
		}))

		gr.Get("/{chat_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
			chatID, err := chatIDParam(r)
			if err != nil {
				return nil, http.StatusNotFound, err
			}
			userID, _ := middlewares.UserID(r.Context())
			msgs, err := ctrl.GetMessages(r.Context(), userID, chatID)
			if err != nil {
				return nil, statusFor(err), err
			}
			return msgs, http.StatusOK, nil
		}))

		gr.Put("/{chat_id}", handleJSON(func(r *http.Request) (any, int, error) {
			chatID, err := chatIDParam(r)
			if err != nil {
				return nil, http.StatusNotFound, err
			}
			var req types.UpdateChatRequest
			if err := decode(r, &req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			userID, _ := middlewares.UserID(r.Context())
			chat, err := ctrl.RenameChat(r.Context(), userID, chatID, req.Title)
			if err != nil {
				return nil, statusFor(err), err
			}
			return chat, http.StatusOK, nil
		}))

		gr.Delete("/{chat_id}", handleJSON(func(r *http.Request) (any, int, error) {
			chatID, err := chatIDParam(r)
			if err != nil {
				return nil, http.StatusNotFound, err
			}
			userID, _ := middlewares.UserID(r.Context())
			if err := ctrl.DeleteChat(r.Context(), userID, chatID); err != nil {
				return nil, statusFor(err), err
			}
			return types.MessageResponse{Message: "Chat deleted successfully"}, http.StatusOK, nil
		}))
	})
	return r
}

// chatIDParam rejects non-numeric ids as not found.
func chatIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "chat_id"))
	if err != nil {
		return 0, controllers.ErrChatNotFound
	}
	return id, nil
}
