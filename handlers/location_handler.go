package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
	"github.com/iitbhu2k25/DSS-Nextjs/utils"
)

// GetStates lists every state sorted by name.
func (h *Handler) GetStates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	states, err := h.locations.States(ctx)
	if err != nil {
		utils.WriteAppError(ctx, w, lookupFailed("states", err))
		return
	}
	log.Debug().Int("count", len(states)).Msg("GetStates: found states")
	writeLookup(w, states)
}

// GetDistricts lists the districts of {"state_code": n}.
func (h *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.DistrictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteAppError(ctx, w, err)
		return
	}
	if !req.StateCode.Set {
		utils.WriteAppError(ctx, w, apperrors.MissingField("state_code"))
		return
	}

	districts, err := h.locations.Districts(ctx, req.StateCode.Value)
	if err != nil {
		utils.WriteAppError(ctx, w, lookupFailed("districts", err))
		return
	}
	log.Debug().Int64("state_code", req.StateCode.Value).Int("count", len(districts)).Msg("GetDistricts: found districts")
	writeLookup(w, districts)
}

// GetSubdistricts lists the sub-districts of {"district_code": [..]}.
func (h *Handler) GetSubdistricts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.SubdistrictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteAppError(ctx, w, err)
		return
	}
	codes := req.DistrictCodes.Values()
	if len(codes) == 0 {
		utils.WriteAppError(ctx, w, apperrors.MissingField("district_code"))
		return
	}

	subdistricts, err := h.locations.Subdistricts(ctx, codes)
	if err != nil {
		utils.WriteAppError(ctx, w, lookupFailed("subdistricts", err))
		return
	}
	log.Debug().Ints64("district_codes", codes).Int("count", len(subdistricts)).Msg("GetSubdistricts: found subdistricts")
	writeLookup(w, subdistricts)
}

// GetVillages lists the villages of {"subdistrict_code": [..]} with their
// 2011 population.
func (h *Handler) GetVillages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.VillageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteAppError(ctx, w, err)
		return
	}
	codes := req.SubdistrictCodes.Values()
	if len(codes) == 0 {
		utils.WriteAppError(ctx, w, apperrors.MissingField("subdistrict_code"))
		return
	}

	villages, err := h.locations.Villages(ctx, codes)
	if err != nil {
		utils.WriteAppError(ctx, w, lookupFailed("villages", err))
		return
	}
	log.Debug().Ints64("subdistrict_codes", codes).Int("count", len(villages)).Msg("GetVillages: found villages")
	writeLookup(w, villages)
}

func writeLookup(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	utils.WriteJSON(w, http.StatusOK, v)
}

func lookupFailed(what string, err error) error {
	return apperrors.Wrap(apperrors.KindInternal, apperrors.CodeDataSource, "failed to load "+what, err)
}
