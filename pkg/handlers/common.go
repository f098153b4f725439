package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"geofeed/pkg/posts"
)

// Response is the success envelope every endpoint answers with.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

// ErrorResponse is the error envelope; Code repeats the HTTP status so
// clients reading the body alone can still branch on it.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CustomError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

// ErrorsResponse is the error envelope of field validation failures: the
// uniform code/message pair plus the per-field detail list.
type ErrorsResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Errors  []*CustomError `json:"errors"`
}

func WriteResult(w http.ResponseWriter, status, msg string, result interface{}, httpStatus int) {
	resp := &Response{Status: status, Message: msg, Result: result}
	res, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	w.Write(res)
}

func WriteError(w http.ResponseWriter, msg string, httpStatus int) {
	resp := &ErrorResponse{Code: httpStatus, Message: msg}
	res, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(httpStatus)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	w.Write(res)
}

func writeErrorsResponse(w http.ResponseWriter, errors []*CustomError, status int) {
	errorsJSON, err := json.Marshal(&ErrorsResponse{Code: status, Message: "invalid request", Errors: errors})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(errorsJSON)
}

type Author struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// PostResponse is the wire shape of a post inside feed and listing results.
type PostResponse struct {
	ID       interface{}    `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	ImageURL string         `json:"imageURL,omitempty"`
	Author   *Author        `json:"author"`
	Created  time.Time      `json:"created"`
	Location posts.Location `json:"location"`
	Cell     string         `json:"cell,omitempty"`
	Views    int64          `json:"views,omitempty"`
}

func mapToPostResponse(p *posts.Post, author *Author) *PostResponse {
	return &PostResponse{
		ID:       p.ID,
		Title:    p.Title,
		Content:  p.Content,
		ImageURL: p.ImageURL,
		Author:   author,
		Created:  p.Created,
		Location: p.Location,
	}
}
