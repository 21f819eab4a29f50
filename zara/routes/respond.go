package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"zara/zara/controllers"
	"zara/zara/utils/logging"
	"zara/zara/utils/types"

	"go.uber.org/zap"
)

// errInvalidBody marks a request body that could not be decoded.
var errInvalidBody = errors.New("invalid request body")

var errorText = []struct {
	err  error
	text string
}{
	{controllers.ErrMissingFields, "Missing required fields"},
	{controllers.ErrEmailTaken, "Email already registered"},
	{controllers.ErrUsernameTaken, "Username already taken"},
	{controllers.ErrInvalidCredentials, "Invalid email or password"},
	{controllers.ErrUserNotFound, "User not found"},
	{controllers.ErrForbidden, "Unauthorized"},
	{controllers.ErrChatNotFound, "Not Found"},
	{controllers.ErrTitleRequired, "Title is required"},
	{controllers.ErrNoMessages, "No messages provided"},
	{errInvalidBody, "Invalid request body"},
}

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			if status >= http.StatusInternalServerError {
				logging.ErrorLogger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
			}
			writeJSON(w, status, errorBody(err))
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorBody(err error) types.ErrorResponse {
	var storageErr *controllers.StorageError
	if errors.As(err, &storageErr) {
		return types.ErrorResponse{Error: "Database error", Msg: "Failed to save message: " + storageErr.Err.Error()}
	}
	for _, e := range errorText {
		if errors.Is(err, e.err) {
			return types.ErrorResponse{Error: e.text}
		}
	}
	return types.ErrorResponse{Error: err.Error()}
}

// statusFor maps controller errors to HTTP statuses.
func statusFor(err error) int {
	var storageErr *controllers.StorageError
	switch {
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError
	case errors.Is(err, controllers.ErrMissingFields),
		errors.Is(err, controllers.ErrTitleRequired),
		errors.Is(err, controllers.ErrNoMessages),
		errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, controllers.ErrEmailTaken), errors.Is(err, controllers.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, controllers.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, controllers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, controllers.ErrUserNotFound), errors.Is(err, controllers.ErrChatNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errInvalidBody, err)
	}
	return nil
}
