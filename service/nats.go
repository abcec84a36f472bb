package service

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// ResolveSubject is the NATS request/reply subject for resolution.
const ResolveSubject = "steering.resolve.v1"

// natsQueue is the queue group so multiple instances share the load.
const natsQueue = "steering"

// NATSEndpoint serves resolution requests over NATS request/reply for
// context assemblers that live on the message bus.
type NATSEndpoint struct {
	service *Service
	conn    *nats.Conn
	sub     *nats.Subscription
	logger  *slog.Logger
}

// NewNATSEndpoint connects to the NATS server and prepares the
// endpoint. Call Start to begin serving.
func NewNATSEndpoint(url string, svc *Service, logger *slog.Logger) (*NATSEndpoint, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url, nats.Name("steering"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSEndpoint{
		service: svc,
		conn:    conn,
		logger:  logger,
	}, nil
}

// Start subscribes to the resolve subject.
func (e *NATSEndpoint) Start() error {
	sub, err := e.conn.QueueSubscribe(ResolveSubject, natsQueue, e.handleResolve)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", ResolveSubject, err)
	}
	e.sub = sub

	e.logger.Info("NATS endpoint started", "subject", ResolveSubject)
	return nil
}

// Stop drains the subscription and closes the connection.
func (e *NATSEndpoint) Stop() error {
	if e.sub != nil {
		if err := e.sub.Drain(); err != nil {
			e.logger.Warn("Failed to drain subscription", "error", err)
		}
	}
	return e.conn.Drain()
}

// handleResolve decodes a ResolveRequest, resolves it, and replies.
func (e *NATSEndpoint) handleResolve(msg *nats.Msg) {
	var req ResolveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		e.replyError(msg, fmt.Sprintf("invalid request: %v", err))
		return
	}

	resp, err := e.service.Resolve(&req)
	if err != nil {
		e.replyError(msg, err.Error())
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		e.replyError(msg, fmt.Sprintf("encode response: %v", err))
		return
	}

	if err := msg.Respond(data); err != nil {
		e.logger.Warn("Failed to respond", "error", err)
	}
}

// errorReply is the JSON error envelope for NATS replies.
type errorReply struct {
	Error string `json:"error"`
}

func (e *NATSEndpoint) replyError(msg *nats.Msg, text string) {
	data, _ := json.Marshal(errorReply{Error: text})
	if err := msg.Respond(data); err != nil {
		e.logger.Warn("Failed to respond with error", "error", err)
	}
}
