package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/migfernandes01/places-share-API/internal/asset"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	commonhttp "github.com/migfernandes01/places-share-API/internal/common/http"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	commonvalidation "github.com/migfernandes01/places-share-API/internal/common/validation"
	"github.com/migfernandes01/places-share-API/internal/user/domain"
	"github.com/migfernandes01/places-share-API/internal/user/service"
)

type signupRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type userResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

type usersEnvelope struct {
	Users []userResponse `json:"users"`
}

type Handler struct {
	users  *service.UserService
	assets asset.Store
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(users *service.UserService, assets asset.Store, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		users:  users,
		assets: assets,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	// Signup is left unbounded because it streams the uploaded avatar.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", commonhttp.RequireMethod(http.MethodGet)(commonhttp.WithTimeout(requestTimeout)(h.list)))
	mux.HandleFunc("/api/users/", commonhttp.RequireMethod(http.MethodGet)(commonhttp.WithTimeout(requestTimeout)(h.list)))
	mux.HandleFunc("/api/users/signup", commonhttp.RequireMethod(http.MethodPost)(h.signup))
	mux.HandleFunc("/api/users/login", commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(requestTimeout)(h.login)))
	return mux
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/users" && r.URL.Path != "/api/users/" {
		commonhttp.WriteError(w, http.StatusNotFound, "Could not find this route.")
		return
	}

	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	commonhttp.WriteJSON(w, http.StatusOK, usersEnvelope{Users: out})
}

// signup stages the avatar first and discards it on every failure path, same
// as place creation.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("image")
	if err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrMissingFile)
		return
	}
	defer file.Close()

	ref, err := h.assets.Stage(r.Context(), file)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	committed := false
	defer func() {
		if !committed {
			h.assets.Discard(r.Context(), ref)
		}
	}()

	req := signupRequest{
		Name:     r.FormValue("name"),
		Email:    normalizeEmail(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if err := commonvalidation.Struct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.users.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    ref,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	committed = true
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		UserID: result.UserID,
		Email:  result.Email,
		Token:  result.Token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidInput.WithCause(err))
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := commonvalidation.Struct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.users.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		UserID: result.UserID,
		Email:  result.Email,
		Token:  result.Token,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(user domain.User) userResponse {
	places := user.PlaceIDs
	if places == nil {
		places = []string{}
	}
	return userResponse{
		ID:     string(user.ID),
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.Image,
		Places: places,
	}
}
