package matchhttp

import (
	"encoding/json"
	"net/http"
)

func writeJSONLD(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

// listingJSONLD — GET /v1/listings/{id}/jsonld.
func (s *serverAPI) listingJSONLD(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.listingJSONLD"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	l, err := s.svc.Listings.GetListing(r.Context(), id)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSONLD(w, s.jsonld.Listing(l))
}

// criteriaJSONLD — GET /v1/criteria/{id}/jsonld.
func (s *serverAPI) criteriaJSONLD(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.criteriaJSONLD"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	c, err := s.svc.Criteria.GetCriteria(r.Context(), id)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSONLD(w, s.jsonld.Criteria(c))
}

// hotSheetMatchesJSONLD — GET /v1/hotsheets/{id}/matches/jsonld: совпадения как ItemList.
func (s *serverAPI) hotSheetMatchesJSONLD(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.hotSheetMatchesJSONLD"

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
	writeJSONLD(w, s.jsonld.Matches("hot sheet "+id.String(), res.Matches))
}
