package api

import (
	"encoding/json"
	"net/http"
	"time"

	"courtside/internal/domain"
)

type auditEntryView struct {
	ID        string            `json:"id"`
	TableName string            `json:"tableName"`
	RecordID  string            `json:"recordId"`
	ChangedBy string            `json:"changedBy"`
	ChangedAt time.Time         `json:"changedAt"`
	Kind      domain.ChangeKind `json:"kind"`
	Diff      json.RawMessage   `json:"diff"`
}

type listAuditResponse struct {
	Data          []auditEntryView `json:"data"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{Page: pageFromQuery(r)}
	q := r.URL.Query()
	if v := q.Get("table_name"); v != "" {
		filter.TableName = &v
	}
	if v := q.Get("record_id"); v != "" {
		filter.RecordID = &v
	}
	if v := q.Get("changed_by"); v != "" {
		filter.ChangedBy = &v
	}
	if v := q.Get("kind"); v != "" {
		kind := domain.ChangeKind(v)
		if !kind.Known() {
			writeError(w, domain.ErrValidation("unknown change kind %q", v))
			return
		}
		filter.Kind = &kind
	}

	entries, total, err := h.audit.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]auditEntryView, len(entries))
	for i, e := range entries {
		data[i] = auditEntryView{
			ID:        e.ID,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt,
			Kind:      e.Kind,
			Diff:      e.Diff,
		}
	}
	writeJSON(w, http.StatusOK, listAuditResponse{
		Data:          data,
		NextPageToken: domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total),
	})
}
