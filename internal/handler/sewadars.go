package handler

import (
	"net/http"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

// GetSewadars lists the roster. A group incharge sees their own group by
// default; a Super Admin sees everyone unless a group filter is given.
func (h *Handler) GetSewadars(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)

	group := domain.Group(r.URL.Query().Get("group"))
	if group == "" {
		if myInfo.Role == domain.RoleSuperAdmin {
			sewadars, err := h.repository.GetAllSewadars()
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
			h.successResponse(w, r, "fetched sewadars", sewadars)
			return
		}
		group = myInfo.AssignedGroup
	}

	if !domain.IsRosterGroup(group) {
		h.errorResponse(w, r, "unknown group")
		return
	}
	if !myInfo.CanAccessGroup(group) {
		h.errorResponse(w, r, "no access to this group's roster")
		return
	}

	sewadars, err := h.repository.GetSewadarsByGroup(group)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched sewadars", sewadars)
}

// CreateCustomSewadar adds an ad-hoc roster entry for a visitor who is not on
// the imported roster, so their attendance can still be marked.
func (h *Handler) CreateCustomSewadar(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)

	var req struct {
		Name      string `json:"name" validate:"required"`
		Gender    string `json:"gender" validate:"required,oneof=Gents Ladies"`
		HomeGroup string `json:"homeGroup" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday Ladies"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !myInfo.CanAccessGroup(domain.Group(req.HomeGroup)) {
		h.errorResponse(w, r, "no access to this group's roster")
		return
	}

	sewadar := &domain.Sewadar{
		Name:      req.Name,
		Gender:    domain.Gender(req.Gender),
		HomeGroup: domain.Group(req.HomeGroup),
		IsCustom:  true,
	}

	if err := h.repository.CreateSewadar(sewadar); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "sewadar created", sewadar)
}
