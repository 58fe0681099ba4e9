package controllers

import (
	"errors"
	"medreminder/internal/models"
	"medreminder/internal/notify"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"net/http"
)

type NotificationController struct {
	gate notifyIfaces.PermissionInterface
}

func NewNotificationController(gate notifyIfaces.PermissionInterface) *NotificationController {
	return &NotificationController{gate: gate}
}

type permissionPayload struct {
	Permission models.Permission `json:"permission" validate:"required"`
}

func (nc *NotificationController) GetPermission(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, permissionPayload{Permission: nc.gate.Permission()})
}

func (nc *NotificationController) SetPermission(w http.ResponseWriter, r *http.Request) {
	var req permissionPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if err := nc.gate.SetPermission(req.Permission); err != nil {
		if errors.Is(err, notify.ErrInvalidPermission) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, permissionPayload{Permission: nc.gate.Permission()})
}
