package matchhttp

import (
	"net/http"

	"listing_exchange/internal/lib/criteriaform"
)

type createdResponse struct {
	ID string `json:"id"`
}

// createListing — POST /v1/listings.
func (s *serverAPI) createListing(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.createListing"

	var form criteriaform.ListingForm
	if err := decode(w, r, &form); err != nil {
		s.fail(w, r, op, err)
		return
	}
	l, err := form.Listing()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	id, err := s.svc.Listings.CreateListing(r.Context(), l)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id.String()})
}

// getListing — GET /v1/listings/{id}.
func (s *serverAPI) getListing(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.getListing"

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
	writeJSON(w, http.StatusOK, listingDomainToDTO(l))
}

// updateListing — PATCH /v1/listings/{id}.
func (s *serverAPI) updateListing(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.updateListing"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	var patch criteriaform.ListingPatch
	if err := decode(w, r, &patch); err != nil {
		s.fail(w, r, op, err)
		return
	}
	update, err := patch.Filter()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	l, err := s.svc.Listings.UpdateListing(r.Context(), id, update)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, listingDomainToDTO(l))
}

// listListings — GET /v1/listings?state=&city=&status=&propertyType=&minPrice=&maxPrice=&pageSize=&pageToken=&order=.
func (s *serverAPI) listListings(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.listListings"

	q := r.URL.Query()
	filter, err := criteriaform.ListingQuery{
		State:        criteriaform.Value(q.Get("state")),
		City:         criteriaform.Value(q.Get("city")),
		Status:       criteriaform.Value(q.Get("status")),
		PropertyType: criteriaform.Value(q.Get("propertyType")),
		MinPrice:     criteriaform.Value(q.Get("minPrice")),
		MaxPrice:     criteriaform.Value(q.Get("maxPrice")),
		AgentUserID:  criteriaform.Value(q.Get("agentUserId")),
		Page:         pageFromQuery(r),
	}.Filter()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	result, err := s.svc.Listings.ListListings(r.Context(), filter)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(result, listingDomainToDTO))
}

func pageFromQuery(r *http.Request) criteriaform.Page {
	q := r.URL.Query()
	return criteriaform.Page{
		Size:  criteriaform.Value(q.Get("pageSize")),
		Token: criteriaform.Value(q.Get("pageToken")),
		Order: criteriaform.Value(q.Get("order")),
	}
}
