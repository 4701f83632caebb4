package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blog/app/config"
	"blog/app/mail"
	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *mux.Router
	store  *repositories.Store
	outbox *mail.Outbox
	posts  *services.PostService
}

func setupTestApp(t *testing.T, rateLimit int) *testApp {
	t.Helper()
	store, err := repositories.Open(repositories.Options{Driver: repositories.DriverBadger, InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	outbox := &mail.Outbox{}
	router, err := SetupRoutes(Dependencies{
		Config: config.AppConfig{PageSize: 2, RateLimitPerMinute: rateLimit},
		From:   "a@a.com",
		Store:  store,
		Mailer: outbox,
	})
	require.NoError(t, err)

	return &testApp{
		router: router,
		store:  store,
		outbox: outbox,
		posts:  services.NewPostService(store.Posts, store.Comments, outbox, services.Settings{PageSize: 2}, nil),
	}
}

func (a *testApp) createPost(t *testing.T, title string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Author: "admin", Body: title + " body", Status: status, Publish: publish}
	require.NoError(t, a.posts.CreatePost(p))
	return p
}

func (a *testApp) commentCount(t *testing.T, postID int) int {
	t.Helper()
	comments, err := a.store.Comments.ListByPost(postID, false)
	require.NoError(t, err)
	return len(comments)
}

func (a *testApp) request(method, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
