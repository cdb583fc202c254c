package database

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aakanni/portfolio-backend/models"
)

var blogSearchFields = []string{"title", "excerpt", "content", "tags::text"}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// List returns one page of posts matching the search term and featured
// filter, newest first, plus the total match count.
func (r *BlogPostRepo) List(term string, featured *bool, p Pagination) ([]models.BlogPost, int64, error) {
	filter := SearchFilter{Term: term, Fields: blogSearchFields, Featured: featured}
	return r.list(filter.Scope, p)
}

// ListByCategory returns posts whose category contains the given value,
// case-insensitively, paginated newest first.
func (r *BlogPostRepo) ListByCategory(category string, p Pagination) ([]models.BlogPost, int64, error) {
	filter := SearchFilter{Term: category, Fields: []string{"category"}}
	return r.list(filter.Scope, p)
}

// ListByTag returns posts whose tag list contains the given value,
// case-insensitively, paginated newest first.
func (r *BlogPostRepo) ListByTag(tag string, p Pagination) ([]models.BlogPost, int64, error) {
	filter := SearchFilter{Term: tag, Fields: []string{"tags::text"}}
	return r.list(filter.Scope, p)
}

func (r *BlogPostRepo) list(scope func(*gorm.DB) *gorm.DB, p Pagination) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	var total int64

	g := new(errgroup.Group)
	g.Go(func() error {
		return r.db.Scopes(scope).
			Order("created_at DESC").
			Limit(p.Limit).
			Offset(p.Skip).
			Find(&posts).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.BlogPost{}).Scopes(scope).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := r.attachCounts(posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Featured returns all featured posts, newest first.
func (r *BlogPostRepo) Featured() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Where("featured = ?", true).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID returns a post by its ID with comments and counters, or nil when
// it does not exist.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	return r.findOne("id = ?", id)
}

// FindBySlug returns a post by its slug with comments and counters, or nil
// when it does not exist.
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	return r.findOne("slug = ?", slug)
}

func (r *BlogPostRepo) findOne(cond string, arg any) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&post, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	posts := []models.BlogPost{post}
	if err := r.attachCounts(posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update persists an existing blog post in the database
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Omit("Comments").Save(post).Error
}

// Delete removes a blog post and its comments, likes and reads.
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.BlogComment{}, &models.BlogLike{}, &models.BlogRead{}} {
			if err := tx.Where("post_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.BlogPost{}, "id = ?", id).Error
	})
}

// ToggleLike adds the voter to the post's like set, or removes it when
// already present. The insert is conflict-free (ON CONFLICT DO NOTHING
// against the composite key), so concurrent toggles cannot lose updates, and
// the returned count is derived from the set itself.
func (r *BlogPostRepo) ToggleLike(postID uuid.UUID, voter string) (likes int64, liked bool, err error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlogLike{PostID: postID, Voter: voter})
	if res.Error != nil {
		return 0, false, res.Error
	}

	liked = res.RowsAffected == 1
	if !liked {
		if err := r.db.Where("post_id = ? AND voter = ?", postID, voter).
			Delete(&models.BlogLike{}).Error; err != nil {
			return 0, false, err
		}
	}

	err = r.db.Model(&models.BlogLike{}).Where("post_id = ?", postID).Count(&likes).Error
	return likes, liked, err
}

// RecordRead adds the voter to the post's reader set if absent and returns
// the set size. Repeated calls from the same voter are no-ops.
func (r *BlogPostRepo) RecordRead(postID uuid.UUID, voter string) (int64, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlogRead{PostID: postID, Voter: voter})
	if res.Error != nil {
		return 0, res.Error
	}

	var readers int64
	err := r.db.Model(&models.BlogRead{}).Where("post_id = ?", postID).Count(&readers).Error
	return readers, err
}

// AddComment appends a comment to the post.
func (r *BlogPostRepo) AddComment(postID uuid.UUID, name, text string) (*models.BlogComment, error) {
	comment := models.BlogComment{
		PostID: postID,
		Name:   name,
		Text:   text,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Comments returns the post's comments in insertion order.
func (r *BlogPostRepo) Comments(postID uuid.UUID) ([]models.BlogComment, error) {
	var comments []models.BlogComment
	err := r.db.Where("post_id = ?", postID).Order("seq ASC").Find(&comments).Error
	return comments, err
}

// DeleteComment removes one comment; the second return reports whether a
// comment with that id existed on the post.
func (r *BlogPostRepo) DeleteComment(postID, commentID uuid.UUID) (bool, error) {
	res := r.db.Where("id = ? AND post_id = ?", commentID, postID).Delete(&models.BlogComment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// attachCounts fills the derived like/reader counters for a batch of posts
// with two grouped queries.
func (r *BlogPostRepo) attachCounts(posts []models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	type grouped struct {
		PostID uuid.UUID
		N      int64
	}

	var likeRows, readRows []grouped
	if err := r.db.Model(&models.BlogLike{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return err
	}
	if err := r.db.Model(&models.BlogRead{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&readRows).Error; err != nil {
		return err
	}

	likes := make(map[uuid.UUID]int64, len(likeRows))
	for _, row := range likeRows {
		likes[row.PostID] = row.N
	}
	reads := make(map[uuid.UUID]int64, len(readRows))
	for _, row := range readRows {
		reads[row.PostID] = row.N
	}

	for i := range posts {
		posts[i].Likes = likes[posts[i].ID]
		posts[i].Readers = reads[posts[i].ID]
	}
	return nil
}
