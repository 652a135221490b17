package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/export"
	"github.com/iitbhu2k25/DSS-Nextjs/models"
	"github.com/iitbhu2k25/DSS-Nextjs/projection"
	"github.com/iitbhu2k25/DSS-Nextjs/utils"
)

const exportFilename = "population_projection.xlsx"

// ProjectPopulation answers POST /population/time-series with
// {village_id: {year: population}}.
func (h *Handler) ProjectPopulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.project(w, r)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// ExportProjection runs the same projection as ProjectPopulation and returns
// it as an XLSX workbook.
func (h *Handler) ExportProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.project(w, r)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, result); err != nil {
		h.fail(ctx, w, apperrors.Wrap(apperrors.KindInternal, apperrors.CodeInternal, "failed to render workbook", err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("ExportProjection: failed to write workbook")
	}
}

// ProjectGeometry answers POST /population/time-series/geometry with
// {village_id: {year: geometry}}. Geometries are echoed unchanged and no
// census data is read.
func (h *Handler) ProjectGeometry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ProjectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(ctx, w, err)
		return
	}
	mode, err := h.parseMode(ctx, req)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	villages, err := projection.GeometryVillages(req.Villages)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	result, err := projection.ProjectGeometry(mode, villages)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	h.metrics.ObserveProjection("geometry_"+mode.Name(), len(villages))
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request) (projection.Result, error) {
	ctx := r.Context()
	var req models.ProjectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	mode, err := h.parseMode(ctx, req)
	if err != nil {
		return nil, err
	}
	villages, err := projection.Villages(req.Villages)
	if err != nil {
		return nil, err
	}
	codes, err := projection.SubdistrictCodes(req.Subdistricts)
	if err != nil {
		return nil, err
	}

	result, err := projection.Project(ctx, h.census, mode, villages, codes)
	if err != nil {
		return nil, err
	}
	h.metrics.ObserveProjection(mode.Name(), len(villages))
	log.Debug().
		Str("mode", mode.Name()).
		Int("villages", len(villages)).
		Int("subdistricts", len(codes)).
		Msg("population projected")
	return result, nil
}

// parseMode validates the base year and picks the projection mode. When both
// a single year and a range are sent, the single year is used.
func (h *Handler) parseMode(ctx context.Context, req models.ProjectionRequest) (projection.Mode, error) {
	if err := projection.CheckBaseYear(req.BaseYear); err != nil {
		return nil, err
	}
	mode, ambiguous, err := projection.ParseMode(req.Year, req.StartYear, req.EndYear, h.maxSpan)
	if err != nil {
		return nil, err
	}
	if ambiguous {
		log.Warn().
			Int64("year", req.Year.Value).
			Int64("start_year", req.StartYear.Value).
			Int64("end_year", req.EndYear.Value).
			Str("request_id", requestID(ctx)).
			Msg("both year and start_year/end_year supplied, projecting the single year")
	}
	return mode, nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	h.metrics.ObserveProjectionError(apperrors.CodeOf(err))
	utils.WriteAppError(ctx, w, err)
}
