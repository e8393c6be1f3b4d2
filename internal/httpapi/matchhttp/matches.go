package matchhttp

import (
	"net/http"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/criteriaform"
)

// hotSheetMatches — GET /v1/hotsheets/{id}/matches.
func (s *serverAPI) hotSheetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.hotSheetMatches"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	res, err := s.svc.HotSheets.Matches(r.Context(), id)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resultToDTO(res, listingDomainToDTO))
}

type countsRequest struct {
	IDs []string `json:"ids"`
}

type countDTO struct {
	HotSheetID string `json:"hotSheetId"`
	Count      int    `json:"count"`
	Invalid    int    `json:"invalid"`
	Truncated  bool   `json:"truncated"`
	Error      string `json:"error,omitempty"`
}

type countsResponse struct {
	Counts []countDTO `json:"counts"`
}

// hotSheetCounts — POST /v1/hotsheets/counts: бейджи для нескольких поисков.
func (s *serverAPI) hotSheetCounts(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.hotSheetCounts"

	var req countsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	ids, err := criteriaform.ParseIDs("ids", req.IDs)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	if len(ids) == 0 {
		s.fail(w, r, op, domain.InvalidField("ids", "required"))
		return
	}

	counts, err := s.svc.HotSheets.RefreshCounts(r.Context(), ids)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	resp := countsResponse{Counts: make([]countDTO, 0, len(counts))}
	for _, c := range counts {
		dto := countDTO{HotSheetID: c.HotSheetID.String(), Count: c.Count, Invalid: c.Invalid, Truncated: c.Truncated}
		if c.Err != nil {
			_, dto.Error = statusFor(c.Err)
		}
		resp.Counts = append(resp.Counts, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

// listingProspects — GET /v1/listings/{id}/prospects (обратный поиск).
func (s *serverAPI) listingProspects(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.listingProspects"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	res, err := s.svc.Prospecting.Prospects(r.Context(), id)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resultToDTO(res, criteriaDomainToDTO))
}

type notifyResponse struct {
	Matched   int `json:"matched"`
	Enqueued  int `json:"enqueued"`
	NoContact int `json:"noContact"`
}

// notifyProspects — POST /v1/listings/{id}/prospects/notify.
func (s *serverAPI) notifyProspects(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.notifyProspects"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	res, err := s.svc.Prospecting.NotifyProspects(r.Context(), id)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, notifyResponse{
		Matched:   res.Matched,
		Enqueued:  res.Enqueued,
		NoContact: res.NoContact,
	})
}
