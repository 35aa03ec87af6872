package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/report"
)

// loadStaff 读取名册，没有名册时返回空列表
func (h *Handler) loadStaff() ([]domain.StaffMember, error) {
	doc, err := h.repository.GetDocument(domain.DocumentStaff)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.StaffMember{}, nil
		}
		return nil, err
	}

	var staff []domain.StaffMember
	if err := json.Unmarshal(doc.Payload, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (h *Handler) GetDayReport(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(DateCtxKey).(string)

	doc, err := h.repository.GetDocument(domain.DayDocument(date))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "当日没有数据")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var day domain.DayData
	if err := json.Unmarshal(doc.Payload, &day); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff, err := h.loadStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取报表成功", domain.DayReportMailData{
		Date:   date,
		Device: doc.UpdatedBy,
		Shifts: report.SummarizeDay(&day, staff),
	})
}

// publishDayReport 把当日汇总放入邮件队列，没有配置收件人时不发送
func (h *Handler) publishDayReport(r *http.Request, date string, day *domain.DayData) {
	if len(h.config.Report.Recipients) == 0 {
		return
	}

	staff, err := h.loadStaff()
	if err != nil {
		slog.Warn("无法读取人员名册，报表中的缺勤统计可能不完整", "date", date, "error", err)
	}

	// 准备邮件
	mailMessage := domain.MailMessage{
		Type: domain.MailTypeDayReport,
		To:   h.config.Report.Recipients,
		Data: domain.DayReportMailData{
			Date:   date,
			Device: r.Context().Value(SubCtxKey).(string),
			Shifts: report.SummarizeDay(day, staff),
		},
	}

	// 序列化邮件
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("无法序列化报表邮件", "date", date, "error", err)
		return
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("无法发送报表邮件到消息队列", "date", date, "error", err)
	}
}
