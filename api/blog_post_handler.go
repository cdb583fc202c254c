package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/errs"
	"github.com/aakanni/portfolio-backend/models"
)

type blogPostStore interface {
	List(term string, featured *bool, p database.Pagination) ([]models.BlogPost, int64, error)
	ListByCategory(category string, p database.Pagination) ([]models.BlogPost, int64, error)
	ListByTag(tag string, p database.Pagination) ([]models.BlogPost, int64, error)
	Featured() ([]models.BlogPost, error)
	FindByID(id uuid.UUID) (*models.BlogPost, error)
	FindBySlug(slug string) (*models.BlogPost, error)
	Add(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	Delete(id uuid.UUID) error
	ToggleLike(postID uuid.UUID, voter string) (likes int64, liked bool, err error)
	RecordRead(postID uuid.UUID, voter string) (int64, error)
	AddComment(postID uuid.UUID, name, text string) (*models.BlogComment, error)
	Comments(postID uuid.UUID) ([]models.BlogComment, error)
	DeleteComment(postID, commentID uuid.UUID) (bool, error)
}

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     blogPostStore
}

func newBlogPostHandler(posts blogPostStore) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type createBlogPostRequest struct {
	Title    string    `json:"title" validate:"required"`
	Slug     string    `json:"slug" validate:"required"`
	Excerpt  string    `json:"excerpt" validate:"required"`
	Content  string    `json:"content" validate:"required"`
	ImageURL string    `json:"imageUrl" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	ReadTime string    `json:"readTime" validate:"required"`
	Category string    `json:"category" validate:"required"`
	Link     string    `json:"link" validate:"required"`
	Tags     []string  `json:"tags"`
	Featured bool      `json:"featured"`
}

type updateBlogPostRequest struct {
	Title    *string    `json:"title"`
	Slug     *string    `json:"slug"`
	Excerpt  *string    `json:"excerpt"`
	Content  *string    `json:"content"`
	ImageURL *string    `json:"imageUrl"`
	Date     *time.Time `json:"date"`
	ReadTime *string    `json:"readTime"`
	Category *string    `json:"category"`
	Link     *string    `json:"link"`
	Tags     *[]string  `json:"tags"`
	Featured *bool      `json:"featured"`
}

func (u updateBlogPostRequest) apply(p *models.BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.Excerpt != nil {
		p.Excerpt = *u.Excerpt
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.ReadTime != nil {
		p.ReadTime = *u.ReadTime
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Link != nil {
		p.Link = *u.Link
	}
	if u.Tags != nil {
		p.Tags = datatypes.NewJSONSlice(*u.Tags)
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
}

func (h blogPostHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListParams(r)

		posts, total, err := h.posts.List(params.search, params.featured, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list blog posts", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(posts, total, params.pagination))
	}
}

func (h blogPostHandler) listPostsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		params := parseListParams(r)

		posts, total, err := h.posts.ListByCategory(category, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list blog posts by category", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(posts, total, params.pagination))
	}
}

func (h blogPostHandler) listPostsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := chi.URLParam(r, "tag")
		params := parseListParams(r)

		posts, total, err := h.posts.ListByTag(tag, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list blog posts by tag", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(posts, total, params.pagination))
	}
}

func (h blogPostHandler) getFeaturedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.Featured()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list featured blog posts", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPost resolves {postID} as a slug first; identifiers that parse as UUIDs
// are looked up by id instead. A slug that happens to be UUID-shaped is
// therefore only reachable by id.
func (h blogPostHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := chi.URLParam(r, "postID")
		if identifier == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
			return
		}

		var (
			post *models.BlogPost
			err  error
		)
		if id, parseErr := uuid.Parse(identifier); parseErr == nil {
			post, err = h.posts.FindByID(id)
		} else {
			post, err = h.posts.FindBySlug(identifier)
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBlogPostRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post := models.BlogPost{
			Title:    req.Title,
			Slug:     req.Slug,
			Excerpt:  req.Excerpt,
			Content:  req.Content,
			ImageURL: req.ImageURL,
			Date:     req.Date,
			ReadTime: req.ReadTime,
			Category: req.Category,
			Link:     req.Link,
			Tags:     datatypes.NewJSONSlice(req.Tags),
			Featured: req.Featured,
		}

		if err := h.posts.Add(&post); err != nil {
			// A duplicate slug maps to 409 inside NewDatabaseError.
			h.responder.WriteError(w, errs.NewDatabaseError("create blog post", "blog post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

func (h blogPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		var req updateBlogPostRequest
		if apiErr := decodeJSON(r, &req, true); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		req.apply(post)

		if err := h.posts.Update(post); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update blog post", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		if err := h.posts.Delete(postID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete blog post", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Blog post deleted successfully",
		})
	}
}

// voterIdentity picks the like/read identity: the caller-supplied userId when
// present, the client IP otherwise.
func voterIdentity(r *http.Request, userID string) string {
	if v := strings.TrimSpace(userID); v != "" {
		return v
	}
	return clientIP(r)
}

// toggleLike flips the caller's membership in the post's like set and returns
// the resulting count. The count is derived from the set, so two concurrent
// toggles by the same voter cannot double-count.
func (h blogPostHandler) toggleLike() http.HandlerFunc {
	type likeRequest struct {
		UserID string `json:"userId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		// Body is optional; anonymous likes fall back to the client IP.
		var req likeRequest
		if apiErr := decodeOptionalJSON(r, &req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		likes, liked, err := h.posts.ToggleLike(postID, voterIdentity(r, req.UserID))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("toggle like", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"likes": likes,
			"liked": liked,
		})
	}
}

// recordRead marks the post as read by the caller, once per identity.
func (h blogPostHandler) recordRead() http.HandlerFunc {
	type readRequest struct {
		UserID string `json:"userId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		var req readRequest
		if apiErr := decodeOptionalJSON(r, &req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		readers, err := h.posts.RecordRead(postID, voterIdentity(r, req.UserID))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("record read", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"readBy": readers})
	}
}

func (h blogPostHandler) addComment() http.HandlerFunc {
	type commentRequest struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		var req commentRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		name := strings.TrimSpace(req.Name)
		text := strings.TrimSpace(req.Text)
		if name == "" || text == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Name and comment text are required"))
			return
		}

		comment, err := h.posts.AddComment(postID, name, text)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("add comment", "blog post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}

func (h blogPostHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find blog post", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		comments, err := h.posts.Comments(postID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list comments", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

func (h blogPostHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxUserRole(r.Context()) != models.RoleAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("Admin privileges required"))
			return
		}

		postID, apiErr := pathUUID(r, "postID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		commentID, apiErr := pathUUID(r, "commentID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		deleted, err := h.posts.DeleteComment(postID, commentID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete comment", "comment", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("comment"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Comment deleted successfully",
		})
	}
}
