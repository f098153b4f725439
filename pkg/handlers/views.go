package handlers

import (
	"context"
	"net/http"
	"time"

	"geofeed/pkg/posts"
	"geofeed/pkg/session"
	"geofeed/pkg/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ViewHandler struct {
	Recorder ViewRecorder
	Logger   *zap.SugaredLogger
}

type ViewRecorder interface {
	Record(ctx context.Context, postID string, viewerID int64) (views.Status, error)
}

// RecordView counts one view of a post by the authenticated viewer. A repeat
// view inside the dedupe window answers IGNORED instead of SUCCESS; both are
// 200s because the request itself was fine either way.
func (h *ViewHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := h.Recorder.Record(ctx, mux.Vars(r)["post_id"], sess.User.ID)
	if err == posts.ErrNotFound {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	msg := "view counted"
	if status == views.StatusIgnored {
		msg = "view ignored"
	}

	WriteResult(w, string(status), msg, struct{}{}, http.StatusOK)
}
