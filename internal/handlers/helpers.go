package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AlexSaifo/school-management-system-sub003/internal/authz"
	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// actorFromRequest loads the full user row for the authenticated caller, used
// to snapshot the acting user into notifications.
func actorFromRequest(r *http.Request, users repository.UserRepository) (models.User, bool) {
	userID, ok := authz.UserIDFromRequest(r)
	if !ok {
		return models.User{}, false
	}
	user, err := users.GetUserByID(r.Context(), userID)
	if err != nil {
		return models.User{}, false
	}
	return user, true
}
