package handlers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"geofeed/pkg/session"
	"geofeed/pkg/user"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

var username = "wanderer"
var password = "secret_password"
var token = "test_token"
var passwordDB = HashPass(getSalt(), password)

func getSalt() []byte {
	salt := make([]byte, 8)
	rand.Read(salt)
	return salt
}

type authCase struct {
	name             string
	reqBody          map[string]string
	setup            func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter)
	execHandler      func(h *UserHandler, w http.ResponseWriter, r *http.Request)
	expectedResponse []byte
	expectedStatus   int
}

var authCases = []authCase{
	{
		name:    "LoginHappyCase",
		reqBody: map[string]string{"username": username, "password": password},
		setup: func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {
			repo.EXPECT().GetByUsername(username).
				Return(&user.User{Username: username, Password: passwordDB, ID: int64(1)}, nil)
			sm.EXPECT().
				Create(gomock.Any(), w, &session.User{ID: int64(1), Username: username}, gomock.Any(), gomock.Any()).
				Return(token, nil)
		},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Login(w, r)
		},
		expectedResponse: []byte(`{"token":"test_token"}`),
		expectedStatus:   http.StatusOK,
	},
	{
		name:    "LoginUserNotExistCase",
		reqBody: map[string]string{"username": username, "password": password},
		setup: func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {
			repo.EXPECT().GetByUsername(username).Return(nil, nil)
		},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Login(w, r)
		},
		expectedResponse: []byte(`{"code":401,"message":"user not found"}`),
		expectedStatus:   http.StatusUnauthorized,
	},
	{
		name:    "LoginWrongPasswordCase",
		reqBody: map[string]string{"username": username, "password": "wrong_password"},
		setup: func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {
			repo.EXPECT().GetByUsername(username).
				Return(&user.User{Username: username, Password: passwordDB, ID: int64(1)}, nil)
		},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Login(w, r)
		},
		expectedResponse: []byte(`{"code":401,"message":"invalid password"}`),
		expectedStatus:   http.StatusUnauthorized,
	},
	{
		name:    "LoginShortPasswordCase",
		reqBody: map[string]string{"username": username, "password": "short"},
		setup:   func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Login(w, r)
		},
		expectedResponse: []byte(`{"code":422,"message":"invalid request","errors":[{"location":"body","param":"password","value":"short","msg":"must be at least 8 characters long"}]}`),
		expectedStatus:   http.StatusUnprocessableEntity,
	},
	{
		name:    "RegisterHappyCase",
		reqBody: map[string]string{"username": username, "password": password},
		setup: func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {
			repo.EXPECT().GetByUsername(username).Return(nil, nil)
			repo.EXPECT().Add(gomock.Any()).Return(int64(1), nil)
			sm.EXPECT().
				Create(gomock.Any(), w, &session.User{ID: int64(1), Username: username}, gomock.Any(), gomock.Any()).
				Return(token, nil)
		},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Register(w, r)
		},
		expectedResponse: []byte(`{"token":"test_token"}`),
		expectedStatus:   http.StatusCreated,
	},
	{
		name:    "RegisterUserAlreadyExistCase",
		reqBody: map[string]string{"username": username, "password": password},
		setup: func(repo *MockUsersRepo, sm *session.MockSessionManager, w http.ResponseWriter) {
			repo.EXPECT().GetByUsername(username).
				Return(&user.User{Username: username, Password: passwordDB, ID: int64(1)}, nil)
		},
		execHandler: func(h *UserHandler, w http.ResponseWriter, r *http.Request) {
			h.Register(w, r)
		},
		expectedResponse: []byte(`{"code":422,"message":"invalid request","errors":[{"location":"body","param":"username","value":"wanderer","msg":"already exists"}]}`),
		expectedStatus:   http.StatusUnprocessableEntity,
	},
}

func TestAuth(t *testing.T) {
	for _, tc := range authCases {
		ctrl := gomock.NewController(t)
		repo := NewMockUsersRepo(ctrl)
		sm := session.NewMockSessionManager(ctrl)
		h := &UserHandler{Sm: sm, Repo: repo, Logger: zap.NewNop().Sugar()}
		w := httptest.NewRecorder()

		bodyBytes, _ := json.Marshal(tc.reqBody)
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(bodyBytes))

		tc.setup(repo, sm, w)
		tc.execHandler(h, w, r)

		if w.Result().StatusCode != tc.expectedStatus {
			t.Fatalf("%s: wrong status code: %d, but expected %d", tc.name, w.Result().StatusCode, tc.expectedStatus)
		}

		res, err := ioutil.ReadAll(w.Body)
		if err != nil {
			t.Fatalf("%s: unexpected error while reading response body: %s", tc.name, err.Error())
		}

		if !reflect.DeepEqual(res, tc.expectedResponse) {
			t.Fatalf("%s: unexpected response: %s but expected %s", tc.name, res, tc.expectedResponse)
		}

		ctrl.Finish()
	}
}
