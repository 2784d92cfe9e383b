// Package flow implements the selection state machine of the booking
// conversation: list events, pick an event, pick a slot, confirm, reserve.
// It is stateless between steps; each inbound action payload encodes enough
// to recompute the next rendering.
package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/alexandroaldente/events-bot/internal/app"
	"github.com/alexandroaldente/events-bot/internal/domain"
)

// Catalog is the read side the flow renders from.
type Catalog interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListSlots(ctx context.Context, eventID int64) ([]domain.Slot, error)
	GetSlot(ctx context.Context, slotID int64) (domain.SlotDetails, error)
}

// Reserver is the reservation engine the confirm step invokes.
type Reserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.ReserveResult, error)
}

// Action is one inbound user action as delivered by the chat transport.
type Action struct {
	ExternalKey string
	DisplayName string
	Handle      string
	Payload     string
}

// Button is one labeled action offered for the next round.
type Button struct {
	Label   string
	Payload string
}

// Rendering is the instruction handed back to the chat transport: display
// text plus an ordered list of buttons.
type Rendering struct {
	Text    string
	Buttons []Button
}

type Flow struct {
	catalog  Catalog
	reserver Reserver
}

func New(catalog Catalog, reserver Reserver) *Flow {
	return &Flow{catalog: catalog, reserver: reserver}
}

const (
	slotButtonTimeLayout = "02.01 15:04"
	slotCardTimeLayout   = "02 Jan, 15:04"
)

// Handle resolves one inbound action to the next rendering. Unknown verbs
// fall back to the greeting; unknown ids resolve to not-found notices. A
// non-nil error means a storage failure and the whole action is safe to
// retry.
func (f *Flow) Handle(ctx context.Context, a Action) (Rendering, error) {
	verb, id := parsePayload(a.Payload)
	switch verb {
	case payloadList:
		return f.listEvents(ctx)
	case verbPickEvent:
		return f.listSlots(ctx, id)
	case verbPickSlot:
		return f.slotCard(ctx, id)
	case verbConfirm:
		return f.reserve(ctx, a, id)
	case payloadStart:
		return f.greeting(a), nil
	default:
		// Unknown verbs restart the conversation instead of faulting.
		return f.greeting(a), nil
	}
}

func (f *Flow) greeting(a Action) Rendering {
	name := a.DisplayName
	if name == "" {
		name = "there"
	}
	return Rendering{
		Text:    fmt.Sprintf("Hi, %s!\nI can help you pick an event and reserve a seat.", name),
		Buttons: []Button{{Label: "📅 Show events", Payload: payloadList}},
	}
}

func (f *Flow) listEvents(ctx context.Context) (Rendering, error) {
	events, err := f.catalog.ListEvents(ctx)
	if err != nil {
		return Rendering{}, err
	}
	if len(events) == 0 {
		return Rendering{Text: "No events yet."}, nil
	}

	buttons := make([]Button, 0, len(events))
	for _, e := range events {
		buttons = append(buttons, Button{
			Label:   "• " + e.Title,
			Payload: pickEventPayload(e.ID),
		})
	}
	return Rendering{Text: "Pick an event:", Buttons: buttons}, nil
}

func (f *Flow) listSlots(ctx context.Context, eventID int64) (Rendering, error) {
	slots, err := f.catalog.ListSlots(ctx, eventID)
	if err != nil {
		return Rendering{}, err
	}
	if len(slots) == 0 {
		return Rendering{
			Text:    "No open slots for this event.",
			Buttons: backToEvents(),
		}, nil
	}

	buttons := make([]Button, 0, len(slots))
	for _, s := range slots {
		buttons = append(buttons, Button{
			Label:   fmt.Sprintf("%s (%d seats left)", formatWhen(s.StartsAt, slotButtonTimeLayout), s.Remaining()),
			Payload: pickSlotPayload(s.ID),
		})
	}
	return Rendering{Text: "Pick a time:", Buttons: buttons}, nil
}

func (f *Flow) slotCard(ctx context.Context, slotID int64) (Rendering, error) {
	details, err := f.catalog.GetSlot(ctx, slotID)
	if err != nil {
		if err == domain.ErrSlotNotFound {
			return slotNotFound(), nil
		}
		return Rendering{}, err
	}

	text := fmt.Sprintf(
		"Event: %s\nWhere: %s\nWhen: %s\nSeats left: %d\n\nReserve a seat?",
		details.EventTitle,
		details.EventLocation,
		formatWhen(details.StartsAt, slotCardTimeLayout),
		details.Remaining(),
	)
	return Rendering{
		Text: text,
		Buttons: []Button{
			{Label: "✅ Yes, sign me up", Payload: confirmPayload(details.ID)},
			// Back navigation is reconstructed from the slot's own event
			// reference, not from any stored session.
			{Label: "↩️ Back to slots", Payload: pickEventPayload(details.EventID)},
		},
	}, nil
}

func (f *Flow) reserve(ctx context.Context, a Action, slotID int64) (Rendering, error) {
	res, err := f.reserver.Reserve(ctx, app.ReserveInput{
		ExternalKey: a.ExternalKey,
		DisplayName: a.DisplayName,
		Handle:      a.Handle,
		SlotID:      slotID,
	})
	if err != nil {
		return Rendering{}, err
	}

	switch res.Status {
	case domain.ReserveConfirmed:
		return Rendering{
			Text: fmt.Sprintf(
				"You're in! %s on %s. Seats left: %d.",
				res.Slot.EventTitle,
				formatWhen(res.Slot.StartsAt, slotCardTimeLayout),
				res.Slot.Remaining(),
			),
			Buttons: backToEvents(),
		}, nil
	case domain.ReserveAlreadyRegistered:
		return Rendering{
			Text:    "You're already registered for this slot.",
			Buttons: backToEvents(),
		}, nil
	case domain.ReserveSlotFull:
		return Rendering{
			Text:    "Sorry, this slot is already full.",
			Buttons: backToEvents(),
		}, nil
	default:
		return slotNotFound(), nil
	}
}

func slotNotFound() Rendering {
	return Rendering{
		Text:    "This slot no longer exists.",
		Buttons: backToEvents(),
	}
}

func backToEvents() []Button {
	return []Button{{Label: "📅 Show events", Payload: payloadList}}
}

func formatWhen(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}
