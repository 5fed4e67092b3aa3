package broadcast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-http-utils/headers"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// ProjectCodeParameter is the query parameter restricting a stream to the messages of one project.
const ProjectCodeParameter = "projectCode"

// ServeHTTP streams status messages as Server-Sent Events until the client goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, commonerrors.New(commonerrors.ErrUnsupported, "streaming").Error(), http.StatusInternalServerError)
		return
	}
	subscription, err := h.Subscribe(r.URL.Query().Get(ProjectCodeParameter))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer func() { _ = subscription.Close() }()

	w.Header().Set(headers.ContentType, "text/event-stream")
	w.Header().Set(headers.CacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(max(h.cfg.HeartbeatPeriod, time.Second))
	defer heartbeat.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case msg, open := <-subscription.Messages():
			if !open {
				return
			}
			if err := writeEvent(w, msg); err != nil {
				h.logger.Error(err, "could not write status event", "projectCode", msg.ProjectCode)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, msg saga.StatusMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not serialise status message")
	}
	_, err = fmt.Fprintf(w, "event: %v\ndata: %s\n\n", msg.Type, data)
	return err
}
