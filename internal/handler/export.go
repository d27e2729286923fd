// export.go implements GET /users/{userId}/plans/export.
// It returns the user's itinerary as a flat table, as JSON by default or as
// CSV with ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// csvHeaders is the first row of every CSV export.
var csvHeaders = []string{
	"plan_id", "destination", "start_date", "end_date", "status", "current",
}

// ExportRow is one itinerary row in the JSON export.
type ExportRow struct {
	PlanID      uuid.UUID           `json:"planId"`
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
	Status      domain.PlanStatus   `json:"status"`
	Current     bool                `json:"current"`
}

// ExportPlans handles GET /users/{userId}/plans/export.
// ?today= evaluates statuses on the caller's calendar day.
func (s *Server) ExportPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	params, ok := bindQuery(w, r, "format", "today")
	if !ok {
		return
	}
	format := "json"
	if params.Format != nil {
		format = *params.Format
	}
	if format != "json" && format != "csv" {
		requestError(w, "format must be json or csv")
		return
	}

	rows, err := s.svc.Export.Export(r.Context(), userID, params.today())
	if err != nil {
		s.fail(w, r, err, "user not found")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.PlanExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.PlanID,
			row.Destination,
			row.StartDate,
			row.EndDate,
			string(row.Status),
			strconv.FormatBool(row.Current),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// rowToResponse maps an export row to its JSON shape. Dates come from the
// service already formatted, so a parse failure is a programming error and
// leaves the field empty.
func rowToResponse(row domain.PlanExportRow) ExportRow {
	id, _ := uuid.Parse(row.PlanID)
	out := ExportRow{
		PlanID:      id,
		Destination: row.Destination,
		Status:      row.Status,
		Current:     row.Current,
	}
	if d, err := domain.ParseDate(row.StartDate); err == nil {
		out.StartDate = apiDate(d)
	}
	if d, err := domain.ParseDate(row.EndDate); err == nil {
		out.EndDate = apiDatePtr(&d)
	}
	return out
}
