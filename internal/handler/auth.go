package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type DeviceClaims struct {
	jwt.RegisteredClaims
}

func (h *Handler) IssueDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"deviceId" validate:"required"`
		Key      string `json:"key" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 验证设备和密钥
	device, err := h.repository.GetDeviceByID(req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "设备不存在或密钥错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(device.KeyHash), []byte(req.Key)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "设备不存在或密钥错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !device.IsActive {
		h.errorResponse(w, r, "设备已停用")
		return
	}

	// 生成 JWT
	now := time.Now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, DeviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   device.ID,
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "令牌已签发", map[string]any{
		"token":     ss,
		"expiresAt": expiration,
	})
}
