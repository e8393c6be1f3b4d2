package matchhttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/logger/sl"
	"listing_exchange/internal/repository"
	"listing_exchange/internal/services/criteria"
	"listing_exchange/internal/services/hotsheet"
	"listing_exchange/internal/services/listing"
	"listing_exchange/internal/services/prospecting"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor переводит ошибку сервиса в HTTP-код и текст для клиента.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNoFieldsToUpdate):
		return http.StatusBadRequest, "no fields to update"
	case errors.Is(err, listing.ErrListingNotFound),
		errors.Is(err, prospecting.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, criteria.ErrCriteriaNotFound):
		return http.StatusNotFound, "criteria not found"
	case errors.Is(err, hotsheet.ErrHotSheetNotFound):
		return http.StatusNotFound, "hot sheet not found"
	case errors.Is(err, hotsheet.ErrNotHotSheet):
		return http.StatusConflict, "criteria is not a hot sheet"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *serverAPI) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code, msg := statusFor(err)
	log := s.log.With(slog.String("op", op))
	if code >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Debug("request rejected", slog.Int("status", code), sl.Err(err))
	}
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

const maxBodyBytes = 4 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return domain.InvalidField("body", err.Error())
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.InvalidField("id", "not a uuid")
	}
	return id, nil
}
