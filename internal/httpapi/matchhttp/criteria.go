package matchhttp

import (
	"net/http"

	"listing_exchange/internal/lib/criteriaform"
)

// createCriteria — POST /v1/criteria: потребность покупателя или hot sheet.
func (s *serverAPI) createCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.createCriteria"

	var form criteriaform.CriteriaForm
	if err := decode(w, r, &form); err != nil {
		s.fail(w, r, op, err)
		return
	}
	c, err := form.Criteria()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	id, err := s.svc.Criteria.CreateCriteria(r.Context(), c)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id.String()})
}

func (s *serverAPI) getCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.getCriteria"

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
	writeJSON(w, http.StatusOK, criteriaDomainToDTO(c))
}

func (s *serverAPI) updateCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.updateCriteria"

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	var patch criteriaform.CriteriaPatch
	if err := decode(w, r, &patch); err != nil {
		s.fail(w, r, op, err)
		return
	}
	update, err := patch.Filter()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	c, err := s.svc.Criteria.UpdateCriteria(r.Context(), id, update)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, criteriaDomainToDTO(c))
}

func (s *serverAPI) listCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "matchhttp.listCriteria"

	q := r.URL.Query()
	filter, err := criteriaform.CriteriaQuery{
		Kind:        criteriaform.Value(q.Get("kind")),
		Status:      criteriaform.Value(q.Get("status")),
		State:       criteriaform.Value(q.Get("state")),
		OwnerUserID: criteriaform.Value(q.Get("ownerUserId")),
		Page:        pageFromQuery(r),
	}.Filter()
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	result, err := s.svc.Criteria.ListCriteria(r.Context(), filter)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(result, criteriaDomainToDTO))
}
