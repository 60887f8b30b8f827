package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redzonehq/redzone/internal/alexa"
	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

// TurnService runs one inbound-event-to-outbound-event cycle: session
// bootstrap when the conversation is fresh, dispatch by request type, and
// envelope assembly with the session attributes round-tripped back to the
// caller. All turn state lives in locals, so a single TurnService handles
// concurrent turns for the same or different users.
type TurnService struct {
	bootstrap *Bootstrap
	router    *Router
	clock     ports.Clock
	logger    *slog.Logger
}

func NewTurnService(bootstrap *Bootstrap, router *Router, clock ports.Clock, logger *slog.Logger) *TurnService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TurnService{bootstrap: bootstrap, router: router, clock: clock, logger: logger}
}

// HandleEvent processes one turn. It either succeeds with a full envelope
// or fails atomically: any error below surfaces as the single turn failure
// and no partial response is produced.
func (s *TurnService) HandleEvent(ctx context.Context, event alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	logger := s.logger.With(
		"user", idTail(event.Identity.UserID),
		"session", idTail(event.Session.ID),
		"request", idTail(event.Request.ID),
	)
	started := s.clock.Now()
	logger.Debug("turn started", "type", string(event.Request.Type), "new_session", event.Session.New)

	sess, err := s.sessionState(ctx, event)
	if err != nil {
		return nil, err
	}

	var speech Speech
	switch event.Request.Type {
	case alexa.RequestTypeLaunch:
		speech = welcomeSpeech(&sess)
	case alexa.RequestTypeIntent:
		if event.Request.Intent == nil {
			return nil, fmt.Errorf("%w: intent request without intent payload", domain.ErrUnknownIntent)
		}
		speech, err = s.router.Dispatch(ctx, &sess, event.Request.Intent.Name, slotsOf(event.Request.Intent))
		if err != nil {
			return nil, err
		}
	case alexa.RequestTypeSessionEnded:
		logger.Debug("session ended by caller")
		return alexa.NewEnvelope(nil, nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRequestType, event.Request.Type)
	}

	attributes, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session attributes: %w", err)
	}

	logger.Debug("turn finished", "elapsed", s.clock.Now().Sub(started))

	return alexa.NewEnvelope(attributes, alexa.NewResponse(speech.Title, speech.Text, speech.Reprompt, speech.EndSession)), nil
}

// sessionState restores the state carried in the session attributes, or
// bootstraps a fresh one when the conversation is new, the attributes are
// absent, or they lack a session identifier.
func (s *TurnService) sessionState(ctx context.Context, event alexa.RequestEnvelope) (domain.SessionState, error) {
	userID := domain.UserID(event.Identity.UserID)

	if !event.Session.New && len(event.Session.Attributes) > 0 {
		var sess domain.SessionState
		if err := json.Unmarshal(event.Session.Attributes, &sess); err != nil {
			return domain.SessionState{}, fmt.Errorf("decode session attributes: %w", err)
		}
		if sess.SessionID != "" && sess.Ready() {
			return sess, nil
		}
	}

	return s.bootstrap.Load(ctx, event.Session.ID, userID)
}

func slotsOf(intent *alexa.Intent) Slots {
	slots := make(Slots, len(intent.Slots))
	for name, slot := range intent.Slots {
		slots[name] = slot.Value
	}
	return slots
}
