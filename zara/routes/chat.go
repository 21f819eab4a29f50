package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"zara/zara/controllers"
	"zara/zara/middlewares"
	"zara/zara/services/auth"
	"zara/zara/utils/logging"
	"zara/zara/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController, tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.OptionalAuthMiddleware(tokens))

	// POST /chat : one turn
	r.With(middleware.Timeout(RequestTimeout)).Post("/", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.ErrorLogger.Error("chat turn panicked", zap.Any("panic", rec), zap.Stack("stack"))
				writeJSON(w, http.StatusInternalServerError, degradedReply(rec))
			}
		}()

		var req types.ChatRequest
		if err := decode(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err))
			return
		}
		reply, err := ctrl.Converse(r.Context(), turnFor(r.Context(), req.Messages, req.ChatID))
		if err != nil {
			writeJSON(w, turnStatus(err), errorBody(err))
			return
		}
		writeJSON(w, http.StatusOK, reply)
	})

	// websocket: one completed reply frame per request frame
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		for {
			var frame types.ChatFrame
			if err := wsjson.Read(ctx, conn, &frame); err != nil {
				if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
					return
				}
				logging.RequestLogger.Info("websocket read ended", zap.Error(err))
				conn.Close(websocket.StatusUnsupportedData, "invalid frame")
				return
			}

			turnCtx := ctx
			if frame.Token != "" {
				userID, err := tokens.Parse(frame.Token)
				if err != nil {
					wsjson.Write(ctx, conn, types.ErrorResponse{Error: "Invalid token"})
					conn.Close(websocket.StatusPolicyViolation, "invalid token")
					return
				}
				turnCtx = context.WithValue(ctx, middlewares.UserIDKey, userID)
			}

			if err := wsjson.Write(ctx, conn, runFrame(turnCtx, ctrl, frame)); err != nil {
				return
			}
		}
	})
	return r
}

func runFrame(ctx context.Context, ctrl *controllers.ChatController, frame types.ChatFrame) (resp any) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorLogger.Error("websocket turn panicked", zap.Any("panic", rec))
			resp = degradedReply(rec)
		}
	}()
	reply, err := ctrl.Converse(ctx, turnFor(ctx, frame.Messages, frame.ChatID))
	if err != nil {
		return errorBody(err)
	}
	return reply
}

func turnFor(ctx context.Context, messages []types.ChatMessage, chatID *int) controllers.Turn {
	turn := controllers.Turn{Messages: messages, ChatID: chatID}
	if id, ok := middlewares.UserID(ctx); ok {
		turn.UserID = &id
	}
	return turn
}

func turnStatus(err error) int {
	if errors.Is(err, controllers.ErrNoMessages) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func degradedReply(rec any) types.Reply {
	return types.Reply{
		Role:    "assistant",
		Content: fmt.Sprintf("I encountered an error: %v. Using fallback mode.", rec),
	}
}
