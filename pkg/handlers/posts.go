package handlers

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"geofeed/pkg/feed"
	"geofeed/pkg/posts"
	"geofeed/pkg/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PostHandler struct {
	PostsRepo PostsRepo
	UsersRepo UsersRepo
	Lister    UserPostsLister
	Logger    *zap.SugaredLogger
}

type PostsRepo interface {
	GetByID(context.Context, interface{}) (*posts.Post, error)
	Add(context.Context, *posts.Post) (interface{}, error)
	Delete(context.Context, interface{}) (bool, error)

	ParseID(string) (interface{}, error)
}

// UserPostsLister pages one creator's posts, newest first.
type UserPostsLister interface {
	FetchUserPosts(ctx context.Context, creatorID int64, cursor string) ([]*posts.Post, string, error)
}

type CreatePostReq struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	ImageURL *string  `json:"imageURL"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type UserPostsResult struct {
	Posts      []*PostResponse `json:"posts"`
	NextCursor string          `json:"nextCursor"`
}

func (p *CreatePostReq) validate() []*CustomError {
	title := &Validator{value: p.Title, location: "body", field: "title"}
	titleErr := func() *CustomError {
		err := title.Required()
		if err != nil {
			return err
		}
		err = title.Empty()
		if err != nil {
			return err
		}
		err = title.MaxLength(100)
		if err != nil {
			return err
		}
		return title.Custom(func(value string) bool {
			return strings.TrimSpace(value) == value
		}, "cannot start or end with whitespace")
	}()

	content := &Validator{value: p.Content, location: "body", field: "content"}
	contentErr := func() *CustomError {
		err := content.Required()
		if err != nil {
			return err
		}
		return content.Empty()
	}()

	var imageErr *CustomError
	if p.ImageURL != nil && *p.ImageURL != "" {
		img := &Validator{value: p.ImageURL, location: "body", field: "imageURL"}
		imageErr = img.URL()
	}

	lat := &FloatValidator{value: p.Lat, location: "body", field: "lat"}
	latErr := func() *CustomError {
		err := lat.Required()
		if err != nil {
			return err
		}
		return lat.Range(-90, 90)
	}()

	lng := &FloatValidator{value: p.Lng, location: "body", field: "lng"}
	lngErr := func() *CustomError {
		err := lng.Required()
		if err != nil {
			return err
		}
		return lng.Range(-180, 180)
	}()

	return mergeErrors(titleErr, contentErr, imageErr, latErr, lngErr)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteError(w, "bad request", http.StatusBadRequest)
		return
	}

	var req CreatePostReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteError(w, "bad request", http.StatusBadRequest)
		return
	}

	validationErrors := req.validate()
	if len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	post := posts.NewPost(*req.Title, *req.Content, imageURL, sess.User.ID, *req.Lat, *req.Lng, time.Now().UTC())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := h.PostsRepo.Add(ctx, post)
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}
	post.ID = id

	resp := mapToPostResponse(post, &Author{Username: sess.User.Username, ID: sess.User.ID})
	WriteResult(w, "SUCCESS", "post created", resp, http.StatusCreated)
}

func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.PostsRepo.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	post, err := h.PostsRepo.GetByID(ctx, id)
	if err == posts.ErrNotFound {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	author, err := h.authorOf(post.CreatorID)
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	WriteResult(w, "SUCCESS", "", mapToPostResponse(post, author), http.StatusOK)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PostsRepo.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	sess, err := session.SessionFromContext(r.Context())
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	post, err := h.PostsRepo.GetByID(ctx, id)
	if err == posts.ErrNotFound {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	if post.CreatorID != sess.User.ID {
		WriteError(w, "not the creator", http.StatusForbidden)
		return
	}

	ok, err := h.PostsRepo.Delete(ctx, id)
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !ok {
		WriteError(w, "post not found", http.StatusNotFound)
		return
	}

	WriteResult(w, "SUCCESS", "post deleted", struct{}{}, http.StatusOK)
}

func (h *PostHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	creatorID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	cursor := r.URL.Query().Get("cursor")
	if cursor != "" {
		if _, err := feed.DecodeCursor(cursor); err != nil {
			WriteError(w, "invalid cursor", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, next, err := h.Lister.FetchUserPosts(ctx, creatorID, cursor)
	if err != nil {
		h.Logger.Error(err.Error())
		WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	authors := map[int64]*Author{}
	result := &UserPostsResult{Posts: make([]*PostResponse, 0, len(page)), NextCursor: next}
	for _, p := range page {
		author, ok := authors[p.CreatorID]
		if !ok {
			author, err = h.authorOf(p.CreatorID)
			if err != nil {
				h.Logger.Error(err.Error())
				WriteError(w, "internal error", http.StatusInternalServerError)
				return
			}
			authors[p.CreatorID] = author
		}
		result.Posts = append(result.Posts, mapToPostResponse(p, author))
	}

	WriteResult(w, "SUCCESS", "", result, http.StatusOK)
}

func (h *PostHandler) authorOf(creatorID int64) (*Author, error) {
	u, err := h.UsersRepo.GetByID(creatorID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return &Author{Username: "deleted", ID: creatorID}, nil
	}

	return &Author{Username: u.Username, ID: u.ID}, nil
}
