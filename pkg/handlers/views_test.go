package handlers

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"geofeed/pkg/posts"
	"geofeed/pkg/session"
	"geofeed/pkg/views"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func viewRequest(postID string, sess *session.Session) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/post/"+postID+"/view", nil)
	r = mux.SetURLVars(r, map[string]string{"post_id": postID})
	if sess != nil {
		r = r.WithContext(context.WithValue(r.Context(), session.SessionKey, sess))
	}
	return r
}

func TestRecordViewCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := NewMockViewRecorder(ctrl)
	h := &ViewHandler{Recorder: recorder, Logger: zap.NewNop().Sugar()}

	sess := &session.Session{User: &session.User{ID: 7, Username: "wanderer"}}
	recorder.EXPECT().Record(gomock.Any(), "abc123", int64(7)).Return(views.StatusCounted, nil)

	w := httptest.NewRecorder()
	h.RecordView(w, viewRequest("abc123", sess))

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("wrong status code: %d", w.Result().StatusCode)
	}

	body, _ := ioutil.ReadAll(w.Body)
	expected := []byte(`{"status":"SUCCESS","message":"view counted","result":{}}`)
	if !reflect.DeepEqual(body, expected) {
		t.Errorf("unexpected response: %s but expected %s", body, expected)
	}
	ctrl.Finish()
}

func TestRecordViewIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := NewMockViewRecorder(ctrl)
	h := &ViewHandler{Recorder: recorder, Logger: zap.NewNop().Sugar()}

	sess := &session.Session{User: &session.User{ID: 7, Username: "wanderer"}}
	recorder.EXPECT().Record(gomock.Any(), "abc123", int64(7)).Return(views.StatusIgnored, nil)

	w := httptest.NewRecorder()
	h.RecordView(w, viewRequest("abc123", sess))

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("wrong status code: %d", w.Result().StatusCode)
	}

	body, _ := ioutil.ReadAll(w.Body)
	expected := []byte(`{"status":"IGNORED","message":"view ignored","result":{}}`)
	if !reflect.DeepEqual(body, expected) {
		t.Errorf("unexpected response: %s but expected %s", body, expected)
	}
	ctrl.Finish()
}

func TestRecordViewUnknownPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := NewMockViewRecorder(ctrl)
	h := &ViewHandler{Recorder: recorder, Logger: zap.NewNop().Sugar()}

	sess := &session.Session{User: &session.User{ID: 7, Username: "wanderer"}}
	recorder.EXPECT().Record(gomock.Any(), "missing", int64(7)).Return(views.Status(""), posts.ErrNotFound)

	w := httptest.NewRecorder()
	h.RecordView(w, viewRequest("missing", sess))

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("wrong status code: %d", w.Result().StatusCode)
	}
	ctrl.Finish()
}

func TestRecordViewNoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := NewMockViewRecorder(ctrl)
	h := &ViewHandler{Recorder: recorder, Logger: zap.NewNop().Sugar()}

	w := httptest.NewRecorder()
	h.RecordView(w, viewRequest("abc123", nil))

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("wrong status code: %d", w.Result().StatusCode)
	}
	ctrl.Finish()
}
