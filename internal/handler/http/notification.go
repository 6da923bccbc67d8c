package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/wfh"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/middleware"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/jwt"
	"github.com/allinone-hr/wfh-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	Count(w http.ResponseWriter, r *http.Request)
	Feed(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	svc        *notification.Service
	jwtService jwt.Service
}

func NewNotificationHandler(svc *notification.Service, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{svc: svc, jwtService: jwtService}
}

func (h *notificationHandlerImpl) Count(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	count, err := h.svc.Count(r.Context(), actor.StaffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"count": count})
}

// Feed returns the caller's unseen requests and marks them seen.
func (h *notificationHandlerImpl) Feed(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	feed, err := h.svc.Feed(r.Context(), actor.StaffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, wfh.ToRequestResponseList(feed))
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(actor.StaffID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}
	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles the SSE connection for real-time lifecycle events.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token comes as a query parameter; SSE cannot set custom headers.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	staffID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.svc.Subscribe(staffID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"staff_id\":%d}\n\n", staffID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
