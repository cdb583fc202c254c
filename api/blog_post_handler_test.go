package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/models"
)

type voterKey struct {
	post  uuid.UUID
	voter string
}

type fakeBlogStore struct {
	posts    []models.BlogPost
	likes    map[voterKey]bool
	reads    map[voterKey]bool
	comments map[uuid.UUID][]models.BlogComment
}

func newFakeBlogStore(posts ...models.BlogPost) *fakeBlogStore {
	return &fakeBlogStore{
		posts:    posts,
		likes:    make(map[voterKey]bool),
		reads:    make(map[voterKey]bool),
		comments: make(map[uuid.UUID][]models.BlogComment),
	}
}

func (s *fakeBlogStore) List(term string, featured *bool, p database.Pagination) ([]models.BlogPost, int64, error) {
	return s.posts, int64(len(s.posts)), nil
}

func (s *fakeBlogStore) ListByCategory(category string, p database.Pagination) ([]models.BlogPost, int64, error) {
	var out []models.BlogPost
	for _, post := range s.posts {
		if strings.EqualFold(post.Category, category) {
			out = append(out, post)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeBlogStore) ListByTag(tag string, p database.Pagination) ([]models.BlogPost, int64, error) {
	var out []models.BlogPost
	for _, post := range s.posts {
		for _, t := range post.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, post)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeBlogStore) Featured() ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range s.posts {
		if post.Featured {
			out = append(out, post)
		}
	}
	return out, nil
}

func (s *fakeBlogStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			p := s.posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) FindBySlug(slug string) (*models.BlogPost, error) {
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			p := s.posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) Add(post *models.BlogPost) error {
	post.ID = uuid.New()
	s.posts = append(s.posts, *post)
	return nil
}

func (s *fakeBlogStore) Update(post *models.BlogPost) error {
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = *post
		}
	}
	return nil
}

func (s *fakeBlogStore) Delete(id uuid.UUID) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeBlogStore) ToggleLike(postID uuid.UUID, voter string) (int64, bool, error) {
	key := voterKey{postID, voter}
	liked := !s.likes[key]
	if liked {
		s.likes[key] = true
	} else {
		delete(s.likes, key)
	}
	return s.likeCount(postID), liked, nil
}

func (s *fakeBlogStore) likeCount(postID uuid.UUID) int64 {
	var n int64
	for key := range s.likes {
		if key.post == postID {
			n++
		}
	}
	return n
}

func (s *fakeBlogStore) RecordRead(postID uuid.UUID, voter string) (int64, error) {
	s.reads[voterKey{postID, voter}] = true

	var n int64
	for key := range s.reads {
		if key.post == postID {
			n++
		}
	}
	return n, nil
}

func (s *fakeBlogStore) AddComment(postID uuid.UUID, name, text string) (*models.BlogComment, error) {
	comment := models.BlogComment{
		ID:        uuid.New(),
		PostID:    postID,
		Name:      name,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.comments[postID] = append(s.comments[postID], comment)
	return &comment, nil
}

func (s *fakeBlogStore) Comments(postID uuid.UUID) ([]models.BlogComment, error) {
	return s.comments[postID], nil
}

func (s *fakeBlogStore) DeleteComment(postID, commentID uuid.UUID) (bool, error) {
	list := s.comments[postID]
	for i := range list {
		if list[i].ID == commentID {
			s.comments[postID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newBlogRouter(store blogPostStore, adminCtx bool) http.Handler {
	h := newBlogPostHandler(store)
	r := chi.NewRouter()
	if adminCtx {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(ctxWithIdentity(req.Context(), "admin-1", models.RoleAdmin)))
			})
		})
	}
	r.Get("/blog/{postID}", h.getPost())
	r.Post("/blog/{postID}/like", h.toggleLike())
	r.Post("/blog/{postID}/read", h.recordRead())
	r.Post("/blog/{postID}/comment", h.addComment())
	r.Get("/blog/{postID}/comments", h.listComments())
	r.Delete("/blog/{postID}/comment/{commentID}", h.deleteComment())
	return r
}

func samplePost(slug string) models.BlogPost {
	return models.BlogPost{
		ID:       uuid.New(),
		Title:    "Post",
		Slug:     slug,
		Content:  "content",
		Excerpt:  "excerpt",
		ImageURL: "/uploads/b.png",
		Date:     time.Now(),
		ReadTime: "5 min",
		Category: "engineering",
		Link:     "/blog/" + slug,
	}
}

type engagementResponse struct {
	Likes  int64 `json:"likes"`
	Liked  bool  `json:"liked"`
	ReadBy int64 `json:"readBy"`
}

func postLike(t *testing.T, router http.Handler, postID, body string) engagementResponse {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/blog/"+postID+"/like", strings.NewReader(body))
	r.RemoteAddr = "198.51.100.7:4242"
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp engagementResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return resp
}

func TestToggleLikeFlipsMembership(t *testing.T) {
	post := samplePost("toggle-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	first := postLike(t, router, post.ID.String(), `{"userId":"alice"}`)
	if !first.Liked || first.Likes != 1 {
		t.Errorf("first toggle = %+v, want liked with 1 like", first)
	}

	second := postLike(t, router, post.ID.String(), `{"userId":"alice"}`)
	if second.Liked || second.Likes != 0 {
		t.Errorf("second toggle = %+v, want unliked with 0 likes", second)
	}
}

func TestToggleLikeCountMatchesVoterSet(t *testing.T) {
	post := samplePost("count-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	postLike(t, router, post.ID.String(), `{"userId":"alice"}`)
	postLike(t, router, post.ID.String(), `{"userId":"bob"}`)
	resp := postLike(t, router, post.ID.String(), `{"userId":"carol"}`)

	if resp.Likes != store.likeCount(post.ID) {
		t.Errorf("reported likes %d diverges from voter set size %d", resp.Likes, store.likeCount(post.ID))
	}
	if resp.Likes != 3 {
		t.Errorf("likes = %d, want 3", resp.Likes)
	}
}

func TestToggleLikeAnonymousFallsBackToIP(t *testing.T) {
	post := samplePost("anon-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	first := postLike(t, router, post.ID.String(), "")
	second := postLike(t, router, post.ID.String(), "")

	// Same IP, so the second request toggles the first like off.
	if first.Likes != 1 || second.Likes != 0 {
		t.Errorf("likes = %d then %d, want 1 then 0", first.Likes, second.Likes)
	}
}

func TestToggleLikeRejectsMalformedBody(t *testing.T) {
	post := samplePost("strict-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/like", strings.NewReader(`{"userId":`))
	r.RemoteAddr = "198.51.100.7:4242"
	router.ServeHTTP(w, r)

	// A broken body must not silently degrade to the IP-derived voter.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if store.likeCount(post.ID) != 0 {
		t.Error("malformed request must not record a like")
	}
}

func TestRecordReadRejectsMalformedBody(t *testing.T) {
	post := samplePost("strict-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/read", strings.NewReader(`not json`))
	r.RemoteAddr = "198.51.100.7:4242"
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(store.reads) != 0 {
		t.Error("malformed request must not record a read")
	}
}

func TestRecordReadIsIdempotent(t *testing.T) {
	post := samplePost("read-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/read", strings.NewReader(`{"userId":"alice"}`))
		router.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}

		var resp engagementResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.ReadBy != 1 {
			t.Errorf("readBy after request %d = %d, want 1", i+1, resp.ReadBy)
		}
	}
}

func TestAddCommentRequiresNameAndText(t *testing.T) {
	post := samplePost("comment-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/comment", strings.NewReader(`{"name":"","text":"hello"}`))
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Name and comment text are required") {
		t.Errorf("body = %s", w.Body.String())
	}
	if len(store.comments[post.ID]) != 0 {
		t.Error("rejected comment must not be appended")
	}
}

func TestAddCommentCreated(t *testing.T) {
	post := samplePost("comment-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/comment", strings.NewReader(`{"name":"alice","text":"great post"}`))
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var comment models.BlogComment
	if err := json.Unmarshal(w.Body.Bytes(), &comment); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if comment.Name != "alice" || comment.Text != "great post" {
		t.Errorf("comment = %+v", comment)
	}
	if len(store.comments[post.ID]) != 1 {
		t.Errorf("stored comments = %d, want 1", len(store.comments[post.ID]))
	}
}

func TestListCommentsPreservesInsertionOrder(t *testing.T) {
	post := samplePost("ordered-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	for _, text := range []string{"first", "second", "third"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/blog/"+post.ID.String()+"/comment",
			strings.NewReader(`{"name":"alice","text":"`+text+`"}`))
		router.ServeHTTP(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog/"+post.ID.String()+"/comments", nil))

	var comments []models.BlogComment
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("comments = %d, want 3", len(comments))
	}
	for i, want := range []string{"first", "second", "third"} {
		if comments[i].Text != want {
			t.Errorf("comment %d = %q, want %q", i, comments[i].Text, want)
		}
	}
}

func TestDeleteCommentRequiresAdmin(t *testing.T) {
	post := samplePost("admin-post")
	store := newFakeBlogStore(post)
	comment, _ := store.AddComment(post.ID, "alice", "hi")

	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/blog/"+post.ID.String()+"/comment/"+comment.ID.String(), nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if len(store.comments[post.ID]) != 1 {
		t.Error("comment must survive a forbidden delete")
	}
}

func TestDeleteCommentAsAdmin(t *testing.T) {
	post := samplePost("admin-post")
	store := newFakeBlogStore(post)
	comment, _ := store.AddComment(post.ID, "alice", "hi")

	router := newBlogRouter(store, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/blog/"+post.ID.String()+"/comment/"+comment.ID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(store.comments[post.ID]) != 0 {
		t.Error("comment not removed")
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	post := samplePost("admin-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/blog/"+post.ID.String()+"/comment/"+uuid.NewString(), nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetPostResolvesSlugThenID(t *testing.T) {
	post := samplePost("my-first-post")
	store := newFakeBlogStore(post)
	router := newBlogRouter(store, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog/my-first-post", nil))
	if w.Code != http.StatusOK {
		t.Errorf("slug lookup status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog/"+post.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Errorf("id lookup status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/blog/no-such-slug", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing slug status = %d, want 404", w.Code)
	}
}

func TestLikeUnknownPost(t *testing.T) {
	router := newBlogRouter(newFakeBlogStore(), false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/blog/"+uuid.NewString()+"/like", strings.NewReader(`{"userId":"alice"}`)))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
