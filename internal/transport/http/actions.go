package http

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/alexandroaldente/events-bot/internal/flow"
)

var codec = jsoniter.ConfigFastest

// ActionHandler is the minimal interface the webhook needs from the flow.
type ActionHandler interface {
	Handle(ctx context.Context, a flow.Action) (flow.Rendering, error)
}

// HandleAction returns the webhook handler the chat adapter posts inbound
// user actions to. The response is the rendering instruction for the next
// round of buttons.
func HandleAction(f ActionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		dec := codec.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserExternalKey == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "user_external_key is required")
			return
		}

		rendering, err := f.Handle(r.Context(), flow.Action{
			ExternalKey: req.UserExternalKey,
			DisplayName: req.DisplayName,
			Handle:      req.Handle,
			Payload:     req.Payload,
		})
		if err != nil {
			// Storage failures stop here: one generic retryable answer, the
			// process keeps serving.
			writeError(w, http.StatusInternalServerError, codeInternalError, "something went wrong, please try again")
			return
		}

		buttons := make([]actionButton, 0, len(rendering.Buttons))
		for _, b := range rendering.Buttons {
			buttons = append(buttons, actionButton{Label: b.Label, Payload: b.Payload})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = codec.NewEncoder(w).Encode(renderingResponse{
			Text:    rendering.Text,
			Buttons: buttons,
		})
	}
}

type actionRequest struct {
	UserExternalKey string `json:"user_external_key"`
	DisplayName     string `json:"display_name"`
	Handle          string `json:"handle"`
	Payload         string `json:"payload"`
}

type actionButton struct {
	Label   string `json:"label"`
	Payload string `json:"payload"`
}

type renderingResponse struct {
	Text    string         `json:"text"`
	Buttons []actionButton `json:"buttons"`
}
