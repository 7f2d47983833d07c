package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Events streams cart snapshots to the client as server-sent events. The
// subscription lives as long as the request: when the client disconnects
// the request context is cancelled, the watch torn down and the remote
// listener released.
func (h *CartHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming_unsupported",
			"streaming is not supported")
		return
	}

	ctx := r.Context()
	snapshots, err := h.carts.Watch(ctx)
	if err != nil {
		handleCartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			payload, err := json.Marshal(cartResponse(snapshot))
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
