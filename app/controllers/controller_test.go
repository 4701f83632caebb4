package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"blog/app/mail"
	"blog/app/models"
	"blog/app/repositories/mock"
	"blog/app/services"
	"blog/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *mux.Router
	posts    *services.PostService
	comments *mock.CommentRepository
	outbox   *mail.Outbox
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	render, err := NewRenderer(views.FS)
	require.NoError(t, err)

	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	outbox := &mail.Outbox{}
	postService := services.NewPostService(postRepo, commentRepo, outbox, services.Settings{PageSize: 2, MailFrom: "a@a.com"}, nil)
	commentService := services.NewCommentService(commentRepo, nil)

	pc := NewPostController(postService, render, "", nil)
	cc := NewCommentController(postService, commentService, render, nil)

	router := mux.NewRouter()
	router.HandleFunc("/", pc.List).Methods("GET")
	router.HandleFunc("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}/", pc.Detail).Methods("GET")
	router.HandleFunc("/{post_id:[0-9]+}/share/", pc.Share).Methods("GET", "POST")
	router.HandleFunc("/{post_id:[0-9]+}/comment/", cc.Create).Methods("POST")

	return &testEnv{router: router, posts: postService, comments: commentRepo, outbox: outbox}
}

func (e *testEnv) post(t *testing.T, title string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Author: "admin", Body: "Body of " + title, Status: status, Publish: publish}
	require.NoError(t, e.posts.CreatePost(p))
	return p
}

func (e *testEnv) do(method, target string, form url.Values, jsonResponse bool) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if jsonResponse {
		req.Header.Set("Accept", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var day = time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

func TestPostList(t *testing.T) {
	env := setupTestEnv(t)
	oldest := env.post(t, "Oldest", models.StatusPublished, day)
	middle := env.post(t, "Middle", models.StatusPublished, day.Add(time.Hour))
	newest := env.post(t, "Newest", models.StatusPublished, day.Add(2*time.Hour))
	env.post(t, "Hidden", models.StatusDraft, day.Add(3*time.Hour))

	t.Run("non numeric page shows the newest posts", func(t *testing.T) {
		w := env.do("GET", "/?page=abc", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		res := decode[ListPage](t, w)
		assert.Equal(t, 1, res.Page.Number)
		assert.Equal(t, 2, res.Page.NumPages)
		require.Len(t, res.Page.Items, 2)
		assert.Equal(t, newest.ID, res.Page.Items[0].ID)
		assert.Equal(t, middle.ID, res.Page.Items[1].ID)
	})

	t.Run("page past the end shows the last page", func(t *testing.T) {
		res := decode[ListPage](t, env.do("GET", "/?page=9", nil, true))
		assert.Equal(t, 2, res.Page.Number)
		require.Len(t, res.Page.Items, 1)
		assert.Equal(t, oldest.ID, res.Page.Items[0].ID)
	})

	t.Run("html", func(t *testing.T) {
		w := env.do("GET", "/", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Newest")
		assert.Contains(t, body, "Middle")
		assert.NotContains(t, body, "Oldest")
		assert.NotContains(t, body, "Hidden")
		assert.Contains(t, body, "Page 1 of 2.")
		assert.Contains(t, body, `href="?page=2"`)
	})
}

func TestPostListEmpty(t *testing.T) {
	env := setupTestEnv(t)

	res := decode[ListPage](t, env.do("GET", "/?page=3", nil, true))
	assert.Equal(t, 1, res.Page.Number)
	assert.Empty(t, res.Page.Items)
}

func TestPostDetail(t *testing.T) {
	env := setupTestEnv(t)
	post := env.post(t, "Hello World", models.StatusPublished, day)
	draft := env.post(t, "Unfinished", models.StatusDraft, day)

	visible := models.NewComment("Bob", "bob@example.com", "Nice post")
	require.NoError(t, visible.SetPost(post))
	visible.BeforeCreate()
	require.NoError(t, env.comments.Create(visible))

	hidden := models.NewComment("Eve", "eve@example.com", "Spam")
	require.NoError(t, hidden.SetPost(post))
	hidden.BeforeCreate()
	hidden.Active = false
	require.NoError(t, env.comments.Create(hidden))

	t.Run("published post with active comments", func(t *testing.T) {
		w := env.do("GET", "/2024/3/9/hello-world/", nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[DetailPage](t, w)
		assert.Equal(t, post.ID, res.Post.ID)
		require.Len(t, res.Comments, 1)
		assert.Equal(t, "Bob", res.Comments[0].Name)
		assert.False(t, res.Form.Bound)
		assert.Empty(t, res.Form.Errors)
		assert.NotContains(t, w.Body.String(), "bob@example.com")
	})

	t.Run("html", func(t *testing.T) {
		w := env.do("GET", "/2024/03/09/hello-world/", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<h1>Hello World</h1>")
		assert.Contains(t, body, "1 comment</h2>")
		assert.Contains(t, body, "Nice post")
		assert.NotContains(t, body, "Spam")
		assert.Contains(t, body, `action="/1/comment/"`)
	})

	notFound := []struct {
		name string
		path string
	}{
		{"draft", "/2024/3/9/" + draft.Slug + "/"},
		{"wrong day", "/2024/3/10/hello-world/"},
		{"wrong slug", "/2024/3/9/goodbye/"},
		{"impossible date", "/2024/13/40/hello-world/"},
		{"zero date", "/0/0/0/hello-world/"},
		{"zero month", "/2024/0/9/hello-world/"},
		{"zero day", "/2024/3/0/hello-world/"},
	}
	for _, tc := range notFound {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do("GET", tc.path, nil, false)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestPostShare(t *testing.T) {
	env := setupTestEnv(t)
	post := env.post(t, "Go Tips", models.StatusPublished, day)
	draft := env.post(t, "Secret", models.StatusDraft, day)

	t.Run("get shows an empty form", func(t *testing.T) {
		w := env.do("GET", "/1/share/", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[SharePage](t, w)
		assert.False(t, res.Sent)
		assert.False(t, res.Form.Bound)
		assert.Empty(t, env.outbox.Messages())
	})

	t.Run("valid post sends one email", func(t *testing.T) {
		form := url.Values{
			"name":    {"Alice"},
			"email":   {"alice@example.com"},
			"to":      {"bob@example.com"},
			"comment": {"Worth a look"},
		}
		w := env.do("POST", "/1/share/", form, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[SharePage](t, w).Sent)

		msgs := env.outbox.Messages()
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0].Subject, `"Alice" recommends you to read "Go Tips"`)
		assert.Equal(t, "a@a.com", msgs[0].From)
		assert.Equal(t, []string{"bob@example.com"}, msgs[0].To)
		assert.Equal(t,
			"Read \"Go Tips\" at http://example.com"+post.AbsoluteURL()+"\n\n\"Alice's comment: Worth a look\"",
			msgs[0].Body)
	})

	t.Run("invalid post sends nothing", func(t *testing.T) {
		before := len(env.outbox.Messages())
		form := url.Values{
			"name":  {strings.Repeat("x", 26)},
			"email": {"not-an-email"},
		}
		w := env.do("POST", "/1/share/", form, false)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Ensure this value has at most 25 characters (it has 26).")
		assert.Contains(t, body, "Enter a valid email address.")
		assert.Contains(t, body, "This field is required.")
		assert.NotContains(t, body, "successfully sent")
		assert.Len(t, env.outbox.Messages(), before)
	})

	t.Run("draft is not found", func(t *testing.T) {
		w := env.do("GET", "/"+itoa(draft.ID)+"/share/", nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("id zero is not found", func(t *testing.T) {
		before := len(env.outbox.Messages())
		form := url.Values{"name": {"Alice"}, "email": {"a@example.com"}, "to": {"b@example.com"}}
		assert.Equal(t, http.StatusNotFound, env.do("GET", "/0/share/", nil, false).Code)
		assert.Equal(t, http.StatusNotFound, env.do("POST", "/0/share/", form, false).Code)
		assert.Len(t, env.outbox.Messages(), before)
	})

	t.Run("mail failure is a server error", func(t *testing.T) {
		env.outbox.Err = errors.New("connection refused")
		defer func() { env.outbox.Err = nil }()

		form := url.Values{"name": {"Alice"}, "email": {"a@example.com"}, "to": {"b@example.com"}}
		w := env.do("POST", "/1/share/", form, true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCommentCreate(t *testing.T) {
	env := setupTestEnv(t)
	post := env.post(t, "Open Thread", models.StatusPublished, day)
	draft := env.post(t, "Closed Thread", models.StatusDraft, day)

	valid := url.Values{"name": {"Carol"}, "email": {"carol@example.com"}, "body": {"First!"}}

	t.Run("valid comment is stored active", func(t *testing.T) {
		w := env.do("POST", "/"+itoa(post.ID)+"/comment/", valid, true)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[CommentPage](t, w)
		require.NotNil(t, res.Comment)
		assert.True(t, res.Comment.Active)
		assert.Equal(t, post.ID, res.Comment.PostID)
		assert.Equal(t, 1, env.comments.Count())

		var raw map[string]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, raw["comment"], "email")
	})

	t.Run("html confirms the comment", func(t *testing.T) {
		w := env.do("POST", "/"+itoa(post.ID)+"/comment/", valid, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Your comment has been added.")
		assert.Equal(t, 2, env.comments.Count())
	})

	t.Run("invalid comment is not stored", func(t *testing.T) {
		w := env.do("POST", "/"+itoa(post.ID)+"/comment/", url.Values{"name": {"Carol"}}, true)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[CommentPage](t, w)
		assert.Nil(t, res.Comment)
		assert.Equal(t, "This field is required.", res.Form.Errors["email"])
		assert.Equal(t, "This field is required.", res.Form.Errors["body"])
		assert.Equal(t, 2, env.comments.Count())
	})

	t.Run("draft post is not found", func(t *testing.T) {
		w := env.do("POST", "/"+itoa(draft.ID)+"/comment/", valid, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 2, env.comments.Count())
	})

	t.Run("id zero is not found", func(t *testing.T) {
		w := env.do("POST", "/0/comment/", valid, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 2, env.comments.Count())
	})

	t.Run("get is not allowed", func(t *testing.T) {
		w := env.do("GET", "/"+itoa(post.ID)+"/comment/", nil, false)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestRendererUnknownTemplate(t *testing.T) {
	render, err := NewRenderer(views.FS)
	require.NoError(t, err)
	err = render.Render(httptest.NewRecorder(), "missing", nil)
	assert.Error(t, err)
}

func TestAbsoluteURL(t *testing.T) {
	req := httptest.NewRequest("GET", "http://blog.local/1/share/", nil)
	assert.Equal(t, "http://blog.local/2024/3/9/x/", absoluteURL(req, "", "/2024/3/9/x/"))
	assert.Equal(t, "https://example.org/2024/3/9/x/", absoluteURL(req, "https://example.org/", "/2024/3/9/x/"))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://blog.local/a/", absoluteURL(req, "", "/a/"))
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "one two", truncateWords("one two", 2))
	assert.Equal(t, "one two …", truncateWords("one two three", 2))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
