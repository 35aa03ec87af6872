package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// getDocument 返回文档内容，文档不存在时返回 null，客户端将其视为没有数据
func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request, key string) {
	doc, err := h.repository.GetDocument(key)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "暂无数据", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取数据成功", doc.Payload)
}

func (h *Handler) putDocument(w http.ResponseWriter, r *http.Request, key string, v any) (*domain.Document, bool) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	doc := &domain.Document{
		Key:       key,
		Payload:   payload,
		UpdatedBy: r.Context().Value(SubCtxKey).(string),
	}
	if err := h.repository.PutDocument(doc); err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	return doc, true
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, domain.DocumentStaff)
}

func (h *Handler) PutStaff(w http.ResponseWriter, r *http.Request) {
	var staff []domain.StaffMember

	if err := h.readJSON(w, r, &staff); err != nil {
		h.badRequest(w, r, err)
		return
	}
	for _, s := range staff {
		if err := h.validate.Struct(s); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	doc, ok := h.putDocument(w, r, domain.DocumentStaff, staff)
	if !ok {
		return
	}

	h.successResponse(w, r, "人员名册已保存", map[string]any{"version": doc.Version})
}

func (h *Handler) GetMaster(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, domain.DocumentMaster)
}

func (h *Handler) PutMaster(w http.ResponseWriter, r *http.Request) {
	var master domain.DayData

	if err := h.readJSON(w, r, &master); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(master); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc, ok := h.putDocument(w, r, domain.DocumentMaster, master)
	if !ok {
		return
	}

	h.successResponse(w, r, "主模板已保存", map[string]any{"version": doc.Version})
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(DateCtxKey).(string)
	h.getDocument(w, r, domain.DayDocument(date))
}

func (h *Handler) PutDay(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(DateCtxKey).(string)

	var day domain.DayData
	if err := h.readJSON(w, r, &day); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(day); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc, ok := h.putDocument(w, r, domain.DayDocument(date), day)
	if !ok {
		return
	}

	// 报表邮件发送失败不影响保存结果
	h.publishDayReport(r, date, &day)

	h.successResponse(w, r, "当日数据已保存", map[string]any{"version": doc.Version})
}
