package controllers

import (
	"net/http"

	"blog/app/forms"
	"blog/app/models"
	"blog/app/services"

	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	postService    *services.PostService
	commentService *services.CommentService
	render         *Renderer
	log            *zap.Logger
}

// CommentPage is the data behind the comment submission result.
type CommentPage struct {
	Post    *models.Post                `json:"post"`
	Form    forms.Result[forms.Comment] `json:"form"`
	Comment *CommentView                `json:"comment,omitempty"`
}

// NewCommentController creates a new CommentController
func NewCommentController(postService *services.PostService, commentService *services.CommentService, render *Renderer, log *zap.Logger) *CommentController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommentController{
		postService:    postService,
		commentService: commentService,
		render:         render,
		log:            log,
	}
}

// Create adds a comment to a published post. Invalid input re-renders the
// form with its errors and stores nothing.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	post, ok := publishedPost(cc.postService, w, r, cc.log)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	data := CommentPage{Post: post, Form: forms.Bind[forms.Comment](r.PostForm)}
	if data.Form.Valid() {
		comment, err := cc.commentService.AddComment(post, data.Form.Data)
		if err != nil {
			failWith(w, r, cc.log, err)
			return
		}
		data.Comment = newCommentView(comment)
	}

	respond(w, r, cc.render, cc.log, TemplateComment, data)
}
