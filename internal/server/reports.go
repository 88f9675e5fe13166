package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sells-group/connectivity-cli/internal/export"
	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/pipeline"
)

// Multipart form fields of POST /v1/reports.
const (
	fieldCRM     = "crm"
	fieldDialer  = "dialer"
	fieldContact = "contact"
)

// handleCreateReport builds a report from two uploaded exports. The response
// is JSON, or an XLSX workbook when ?format=xlsx.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := export.ParseFormat(q)
		if err != nil || (f != export.FormatJSON && f != export.FormatXLSX) {
			writeError(w, http.StatusBadRequest, "format must be json or xlsx")
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d MB", s.cfg.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with crm and dialer files")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	crmFile, crmHeader, err := r.FormFile(fieldCRM)
	if err != nil {
		writeError(w, http.StatusBadRequest, "crm file is required")
		return
	}
	defer crmFile.Close()

	dialerFile, dialerHeader, err := r.FormFile(fieldDialer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dialer file is required")
		return
	}
	defer dialerFile.Close()

	report, err := s.builder.BuildUploads(r.Context(),
		upload(crmFile, crmHeader),
		upload(dialerFile, dialerHeader),
	)
	if err != nil {
		zap.L().Warn("server: build report",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var details []model.CallDetail
	if contact := r.FormValue(fieldContact); contact != "" {
		details = report.CallDetails(s.builder.Normalizer().Normalize(contact))
	}

	switch format {
	case export.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.xlsx"`, report.ID))
		w.WriteHeader(http.StatusOK)
		if err := export.WriteXLSX(w, export.Sheets(report, details)); err != nil {
			zap.L().Warn("server: write workbook", zap.String("report_id", report.ID), zap.Error(err))
		}
	default:
		writeJSON(w, http.StatusOK, export.Document{Report: report, CallDetails: details})
	}
}

func upload(f multipart.File, h *multipart.FileHeader) pipeline.Upload {
	return pipeline.Upload{Name: h.Filename, Reader: f}
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}
