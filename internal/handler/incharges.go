package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllIncharges(w http.ResponseWriter, r *http.Request) {
	incharges, err := h.repository.GetAllIncharges()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched incharges", incharges)
}

func (h *Handler) CreateIncharge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username      string `json:"username" validate:"required"`
		FullName      string `json:"fullName" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Role          string `json:"role" validate:"required,oneof='Gents Incharge' 'Ladies Incharge' 'Super Admin'"`
		AssignedGroup string `json:"assignedGroup" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday Ladies"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Role != string(domain.RoleSuperAdmin) && req.AssignedGroup == "" {
		h.errorResponse(w, r, "a group incharge needs an assigned group")
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewIncharge.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	incharge := &domain.Incharge{
		Username:      req.Username,
		PasswordHash:  string(hashedPassword),
		FullName:      req.FullName,
		Email:         req.Email,
		Role:          domain.Role(req.Role),
		AssignedGroup: domain.Group(req.AssignedGroup),
	}

	if err := h.repository.CreateIncharge(incharge); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "incharges_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case pgErr.ConstraintName == "incharges_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_incharge",
		To:   incharge.Email,
		Data: domain.CreateInchargeMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "incharge created", incharge)
}

func (h *Handler) GetIncharge(w http.ResponseWriter, r *http.Request) {
	incharge := r.Context().Value(InchargeInfoCtx).(*domain.Incharge)
	h.successResponse(w, r, "fetched incharge", incharge)
}

func (h *Handler) UpdateIncharge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email         *string `json:"email" validate:"omitempty,email"`
		Role          *string `json:"role" validate:"omitempty,oneof='Gents Incharge' 'Ladies Incharge' 'Super Admin'"`
		AssignedGroup *string `json:"assignedGroup" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday Ladies"`
		IsActive      *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	incharge := r.Context().Value(InchargeInfoCtx).(*domain.Incharge)

	if req.Email != nil {
		incharge.Email = *req.Email
	}
	if req.Role != nil {
		incharge.Role = domain.Role(*req.Role)
	}
	if req.AssignedGroup != nil {
		incharge.AssignedGroup = domain.Group(*req.AssignedGroup)
	}
	if req.IsActive != nil {
		incharge.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateIncharge(incharge); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "incharges_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update incharge, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "incharge updated", incharge)
}

func (h *Handler) DeleteIncharge(w http.ResponseWriter, r *http.Request) {
	incharge := r.Context().Value(InchargeInfoCtx).(*domain.Incharge)

	if err := h.repository.DeleteIncharge(incharge.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "incharge deleted", nil)
}

func (h *Handler) UpdateInchargePassword(w http.ResponseWriter, r *http.Request) {
	incharge := r.Context().Value(InchargeInfoCtx).(*domain.Incharge)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	incharge.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateIncharge(incharge); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password changed", nil)
}
