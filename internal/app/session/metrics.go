package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomclient_signal_events_total",
		Help: "Signaling events handled, by type.",
	}, []string{"type"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomclient_state_transitions_total",
		Help: "Session state transitions, by target state.",
	}, []string{"state"})

	chatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomclient_chat_messages_total",
		Help: "Chat messages appended, by origin.",
	}, []string{"origin"})

	toggleRollbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomclient_toggle_rollbacks_total",
		Help: "Optimistic media toggles rolled back after a failed request.",
	}, []string{"kind"})
)
