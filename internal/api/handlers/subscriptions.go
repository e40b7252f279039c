package handlers

import (
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

type ToggleSubscriptionResponse struct {
	Subscribed       bool  `json:"subscribed"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		writeServiceError(w, "SubscriptionHandler.Toggle", err)
		return
	}

	result, err := h.subscriptionService.Toggle(r.Context(), userID, channelID)
	if err != nil {
		writeServiceError(w, "SubscriptionHandler.Toggle", err)
		return
	}

	respond(w, http.StatusOK, ToggleSubscriptionResponse{
		Subscribed:       result.Subscribed,
		TotalSubscribers: result.TotalSubscribers,
	}, "Subscription toggled")
}

func (h *SubscriptionHandler) SubscriberCount(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		writeServiceError(w, "SubscriptionHandler.SubscriberCount", err)
		return
	}

	count, err := h.subscriptionService.SubscriberCount(r.Context(), channelID)
	if err != nil {
		writeServiceError(w, "SubscriptionHandler.SubscriberCount", err)
		return
	}

	respond(w, http.StatusOK, map[string]int64{"subscriberCount": count}, "Subscriber count fetched")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	subs, err := h.subscriptionService.SubscribedChannels(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "SubscriptionHandler.SubscribedChannels", err)
		return
	}

	respond(w, http.StatusOK, subs, "Subscribed channels fetched")
}
