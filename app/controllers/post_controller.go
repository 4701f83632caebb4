package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"blog/app/forms"
	"blog/app/models"
	"blog/app/pagination"
	"blog/app/repositories"
	"blog/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	render      *Renderer
	baseURL     string
	log         *zap.Logger
}

// ListPage is the data behind the post list.
type ListPage struct {
	Page pagination.Page[*models.Post] `json:"page"`
}

// CommentView is a comment as readers see it. Commenters' email addresses
// are never shown.
type CommentView struct {
	ID      int       `json:"id"`
	PostID  int       `json:"post_id"`
	Name    string    `json:"name"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Active  bool      `json:"active"`
}

func newCommentView(c *models.Comment) *CommentView {
	return &CommentView{
		ID:      c.ID,
		PostID:  c.PostID,
		Name:    c.Name,
		Body:    c.Body,
		Created: c.Created,
		Active:  c.Active,
	}
}

// DetailPage is the data behind a post's page.
type DetailPage struct {
	Post     *models.Post                `json:"post"`
	Comments []*CommentView              `json:"comments"`
	Form     forms.Result[forms.Comment] `json:"form"`
}

// SharePage is the data behind the share form.
type SharePage struct {
	Post *models.Post                  `json:"post"`
	Form forms.Result[forms.EmailPost] `json:"form"`
	Sent bool                          `json:"sent"`
}

// NewPostController creates a new PostController. baseURL may be empty, in
// which case shared links use the request's host.
func NewPostController(postService *services.PostService, render *Renderer, baseURL string, log *zap.Logger) *PostController {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostController{
		postService: postService,
		render:      render,
		baseURL:     baseURL,
		log:         log,
	}
}

// List shows a page of published posts, newest first.
func (pc *PostController) List(w http.ResponseWriter, r *http.Request) {
	page, err := pc.postService.ListPublished(r.URL.Query().Get("page"))
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	respond(w, r, pc.render, pc.log, TemplateList, ListPage{Page: page})
}

// Detail shows a published post with its active comments and a blank
// comment form.
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	day, errD := strconv.Atoi(vars["day"])
	if errY != nil || errM != nil || errD != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	post, err := pc.postService.Detail(year, month, day, vars["slug"])
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	comments := make([]*CommentView, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, newCommentView(c))
	}
	respond(w, r, pc.render, pc.log, TemplateDetail, DetailPage{
		Post:     post,
		Comments: comments,
		Form:     forms.Empty[forms.Comment](),
	})
}

// Share shows the share form on GET and emails the post on a valid POST.
func (pc *PostController) Share(w http.ResponseWriter, r *http.Request) {
	post, ok := publishedPost(pc.postService, w, r, pc.log)
	if !ok {
		return
	}

	data := SharePage{Post: post, Form: forms.Empty[forms.EmailPost]()}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		data.Form = forms.Bind[forms.EmailPost](r.PostForm)
		if data.Form.Valid() {
			link := absoluteURL(r, pc.baseURL, post.AbsoluteURL())
			if err := pc.postService.Share(post, data.Form.Data, link); err != nil {
				pc.fail(w, r, err)
				return
			}
			data.Sent = true
		}
	}

	respond(w, r, pc.render, pc.log, TemplateShare, data)
}

func (pc *PostController) fail(w http.ResponseWriter, r *http.Request, err error) {
	failWith(w, r, pc.log, err)
}

// publishedPost resolves the post_id route variable to a published post,
// answering 404 itself when there is none.
func publishedPost(svc *services.PostService, w http.ResponseWriter, r *http.Request, log *zap.Logger) (*models.Post, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil || id < 1 {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return nil, false
	}
	post, err := svc.GetPublished(id)
	if err != nil {
		failWith(w, r, log, err)
		return nil, false
	}
	return post, true
}

func failWith(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
}
