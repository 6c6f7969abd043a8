package http

import (
	"net/http"

	"github.com/migfernandes01/places-share-API/internal/asset"
	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	commonhttp "github.com/migfernandes01/places-share-API/internal/common/http"
	"github.com/migfernandes01/places-share-API/internal/common/jwtverify"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	commonvalidation "github.com/migfernandes01/places-share-API/internal/common/validation"
	"github.com/migfernandes01/places-share-API/internal/geocode"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
	"github.com/migfernandes01/places-share-API/internal/place/service"
)

type createRequest struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
	Address     string `validate:"required"`
}

type updateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

type locationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placeResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Address     string           `json:"address"`
	Location    locationResponse `json:"location"`
	Creator     string           `json:"creator"`
}

type placeEnvelope struct {
	Place placeResponse `json:"place"`
}

type placesEnvelope struct {
	Places []placeResponse `json:"places"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Handler serves /api/places. Reads are public; mutations go through the
// token gate, so claims are always present in the mutation handlers.
type Handler struct {
	places *service.PlaceService
	assets asset.Store
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(places *service.PlaceService, assets asset.Store, jwtSecret string, log *logger.Logger) http.Handler {
	h := &Handler{
		places: places,
		assets: assets,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	gate := jwtverify.Middleware(jwtSecret, log)
	mutations := gate(http.HandlerFunc(h.dispatchMutation))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.dispatchRead(w, r)
			return
		}
		mutations.ServeHTTP(w, r)
	})
}

func (h *Handler) dispatchRead(w http.ResponseWriter, r *http.Request) {
	if userID, ok := commonhttp.ExtractUserIDFromPath(r.URL.Path); ok {
		h.getByUser(w, r, userID)
		return
	}
	if placeID, ok := commonhttp.ExtractPlaceIDFromPath(r.URL.Path); ok {
		h.getByID(w, r, placeID)
		return
	}
	commonhttp.WriteError(w, http.StatusNotFound, "Could not find this route.")
}

func (h *Handler) dispatchMutation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if r.URL.Path == "/api/places" || r.URL.Path == "/api/places/" {
			h.create(w, r)
			return
		}
	case http.MethodPatch:
		if placeID, ok := commonhttp.ExtractPlaceIDFromPath(r.URL.Path); ok {
			h.update(w, r, placeID)
			return
		}
	case http.MethodDelete:
		if placeID, ok := commonhttp.ExtractPlaceIDFromPath(r.URL.Path); ok {
			h.delete(w, r, placeID)
			return
		}
	}
	commonhttp.WriteError(w, http.StatusNotFound, "Could not find this route.")
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request, placeID string) {
	place, err := h.places.GetPlaceByID(r.Context(), placeID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, placeEnvelope{Place: toPlaceResponse(place)})
}

func (h *Handler) getByUser(w http.ResponseWriter, r *http.Request, userID string) {
	places, err := h.places.GetPlacesByUser(r.Context(), userID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	out := make([]placeResponse, 0, len(places))
	for _, place := range places {
		out = append(out, toPlaceResponse(place))
	}

	commonhttp.WriteJSON(w, http.StatusOK, placesEnvelope{Places: out})
}

// create stages the image before anything else and discards it again on every
// failure path, so a rejected request leaves nothing behind in the store.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrAuthentication)
		return
	}

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

	req := createRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if err := commonvalidation.Struct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	place, err := h.places.CreatePlace(r.Context(), service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Image:       ref,
		CreatorID:   claims.UserID,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	committed = true
	commonhttp.WriteJSON(w, http.StatusCreated, placeEnvelope{Place: toPlaceResponse(place)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, placeID string) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrAuthentication)
		return
	}

	var req updateRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidInput.WithCause(err))
		return
	}
	if err := commonvalidation.Struct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	place, err := h.places.UpdatePlace(r.Context(), service.UpdateInput{
		PlaceID:     placeID,
		Title:       req.Title,
		Description: req.Description,
		ActorID:     claims.UserID,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, placeEnvelope{Place: toPlaceResponse(place)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, placeID string) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrAuthentication)
		return
	}

	if err := h.places.DeletePlace(r.Context(), placeID, claims.UserID); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "Deleted place."})
}

func toPlaceResponse(place domain.Place) placeResponse {
	return placeResponse{
		ID:          string(place.ID),
		Title:       place.Title,
		Description: place.Description,
		Image:       place.Image,
		Address:     place.Address,
		Location:    toLocationResponse(place.Location),
		Creator:     string(place.Creator),
	}
}

func toLocationResponse(location geocode.Location) locationResponse {
	return locationResponse{Lat: location.Lat, Lng: location.Lng}
}
