package flow

import (
	"fmt"
	"strconv"
	"strings"
)

// Button payloads carry the entire flow position as "verb" or "verb:id", so
// any stateless handler can resume the flow from the payload alone.
const (
	payloadStart = "start"
	payloadList  = "list"

	verbPickEvent = "event"
	verbPickSlot  = "slot"
	verbConfirm   = "confirm"
)

func pickEventPayload(eventID int64) string {
	return fmt.Sprintf("%s:%d", verbPickEvent, eventID)
}

func pickSlotPayload(slotID int64) string {
	return fmt.Sprintf("%s:%d", verbPickSlot, slotID)
}

func confirmPayload(slotID int64) string {
	return fmt.Sprintf("%s:%d", verbConfirm, slotID)
}

// parsePayload splits a payload into its verb and id. A malformed or
// non-positive id parses to 0, which downstream lookups resolve to the
// not-found rendering rather than a fault.
func parsePayload(payload string) (verb string, id int64) {
	verb, rest, found := strings.Cut(strings.TrimSpace(payload), ":")
	if !found {
		return verb, 0
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 0 {
		return verb, 0
	}
	return verb, id
}
