package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fuelmywork/fuelmywork-backend/api/responses"
	"github.com/fuelmywork/fuelmywork-backend/api/validators"
	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
)

// GetCreatorProfile returns the public support page view for a creator.
func GetCreatorProfile(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "creator service unavailable"))
			return
		}

		username := chi.URLParam(r, "username")
		profile, err := svc.PublicProfile(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// ListCreatorSupporters returns the public feed of a creator's verified
// support, newest first.
func ListCreatorSupporters(creatorSvc creators.Service, supportSvc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if creatorSvc == nil || supportSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		username := chi.URLParam(r, "username")
		creator, err := creatorSvc.GetByUsername(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := supportSvc.RecentSupporters(r.Context(), creator.ID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
