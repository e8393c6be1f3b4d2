package matchhttp

import (
	"net/http"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/criteriaform"
	"listing_exchange/internal/services/criteria"
	"listing_exchange/internal/services/matching"
)

type evaluateRequest struct {
	Perspective string                    `json:"perspective"`
	Listing     criteriaform.ListingForm  `json:"listing"`
	Criteria    criteriaform.CriteriaForm `json:"criteria"`
}

type evaluateResponse struct {
	Perspective string `json:"perspective"`
	Matched     bool   `json:"matched"`
}

// evaluate — POST /v1/match/evaluate: одно объявление против одних критериев, без БД.
func (s *serverAPI) evaluate(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.evaluate"

	var req evaluateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	p, err := matching.ParsePerspective(req.Perspective)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	l, err := req.Listing.Listing()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	c, err := criteriaFor(p)(req.Criteria)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	ok, err := matching.Match(l, c, p)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluateResponse{Perspective: p.String(), Matched: ok})
}

// countRequest: для hot-sheet заполняются criteria и listings,
// для reverse-prospecting — listing и needs.
type countRequest struct {
	Perspective string                      `json:"perspective"`
	Criteria    *criteriaform.CriteriaForm  `json:"criteria"`
	Listings    []criteriaform.ListingForm  `json:"listings"`
	Listing     *criteriaform.ListingForm   `json:"listing"`
	Needs       []criteriaform.CriteriaForm `json:"needs"`
}

// count — POST /v1/match/count: опорная запись против коллекции, без БД.
// Формы коллекции, которые не удалось разобрать, попадают в invalid.
func (s *serverAPI) count(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.count"

	var req countRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	p, err := matching.ParsePerspective(req.Perspective)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	switch p {
	case matching.HotSheet:
		if req.Criteria == nil {
			s.fail(w, r, op, domain.InvalidField("criteria", "required"))
			return
		}
		c, err := criteriaFor(p)(*req.Criteria)
		if err != nil {
			s.fail(w, r, op, err)
			return
		}
		batch := criteriaform.ParseBatch(req.Listings, criteriaform.ListingForm.Listing)
		res, err := matching.CountListings(c, batch.Records, p)
		if err != nil {
			s.fail(w, r, op, err)
			return
		}
		writeJSON(w, http.StatusOK, resultToDTO(batch.Merge(res), listingDomainToDTO))

	default:
		if req.Listing == nil {
			s.fail(w, r, op, domain.InvalidField("listing", "required"))
			return
		}
		l, err := req.Listing.Listing()
		if err != nil {
			s.fail(w, r, op, err)
			return
		}
		batch := criteriaform.ParseBatch(req.Needs, criteriaFor(p))
		res, err := matching.CountCriteria(l, batch.Records, p)
		if err != nil {
			s.fail(w, r, op, err)
			return
		}
		writeJSON(w, http.StatusOK, resultToDTO(batch.Merge(res), criteriaDomainToDTO))
	}
}

// criteriaFor разбирает форму критериев; пустой вид берётся из направления.
func criteriaFor(p matching.Perspective) func(criteriaform.CriteriaForm) (domain.Criteria, error) {
	return func(f criteriaform.CriteriaForm) (domain.Criteria, error) {
		if f.Kind.String() == "" {
			f.Kind = criteriaform.Value(criteria.KindFor(p))
		}
		return f.Criteria()
	}
}
