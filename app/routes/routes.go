package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"blog/app/config"
	"blog/app/controllers"
	"blog/app/mail"
	"blog/app/middleware"
	"blog/app/repositories"
	"blog/app/services"
	"blog/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Config config.AppConfig
	From   string
	Store  *repositories.Store
	Mailer mail.Mailer
	Log    *zap.Logger
}

// SetupRoutes defines the blog's routes and returns a router.
func SetupRoutes(deps Dependencies) (*mux.Router, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	render, err := controllers.NewRenderer(views.FS)
	if err != nil {
		return nil, err
	}

	postService := services.NewPostService(deps.Store.Posts, deps.Store.Comments, deps.Mailer, services.Settings{
		PageSize: deps.Config.PageSize,
		MailFrom: deps.From,
	}, log)
	commentService := services.NewCommentService(deps.Store.Comments, log)

	postController := controllers.NewPostController(postService, render, deps.Config.BaseURL, log)
	commentController := controllers.NewCommentController(postService, commentService, render, log)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.NewRateLimiter(deps.Config.RateLimitPerMinute).Limit)

	router.NotFoundHandler = errorHandler("Not found", http.StatusNotFound)
	router.MethodNotAllowedHandler = errorHandler("Method not allowed", http.StatusMethodNotAllowed)

	router.HandleFunc("/", postController.List).Methods("GET")
	router.HandleFunc("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}/", postController.Detail).Methods("GET")
	router.HandleFunc("/{post_id:[0-9]+}/share/", postController.Share).Methods("GET", "POST")
	router.HandleFunc("/{post_id:[0-9]+}/comment/", commentController.Create).Methods("POST")

	return router, nil
}

// errorHandler answers with message as JSON for clients asking for it and
// as plain text otherwise. Router level middleware does not run for these.
func errorHandler(message string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": message})
			return
		}
		http.Error(w, message, status)
	})
}
