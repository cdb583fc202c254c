package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlogPost represents a complete blog post with engagement counters.
//
// Likes and reads live in child tables keyed by (post_id, voter) so the
// counters are derived counts rather than fields kept in sync by handlers.
type BlogPost struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug      string                      `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	Content   string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt   string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	ImageURL  string                      `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Date      time.Time                   `json:"date" db:"date" gorm:"type:timestamp;not null"`
	ReadTime  string                      `json:"readTime" db:"read_time" gorm:"type:text;not null"`
	Category  string                      `json:"category" db:"category" gorm:"type:text;not null;index"`
	Link      string                      `json:"link" db:"link" gorm:"type:text;not null"`
	Tags      datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Featured  bool                        `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`

	// Derived engagement counters, populated by the repository on reads.
	Likes   int64 `json:"likes" gorm:"-"`
	Readers int64 `json:"readBy" gorm:"-"`

	Comments []BlogComment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// BlogComment is an append-only comment on a blog post. Seq preserves
// insertion order, which is the display order.
type BlogComment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index:idx_blog_comment_post_id"`
	Seq       int64     `json:"-" db:"seq" gorm:"autoIncrement;uniqueIndex"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Text      string    `json:"text" db:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"date" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogLike records one voter's like on one post. The unique index makes the
// add-to-set write atomic at the store, so likes can never diverge from the
// voter set.
type BlogLike struct {
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;primaryKey"`
	Voter     string    `json:"voter" db:"voter" gorm:"type:text;primaryKey"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogRead records one voter having read one post, same shape as BlogLike.
type BlogRead struct {
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;primaryKey"`
	Voter     string    `json:"voter" db:"voter" gorm:"type:text;primaryKey"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
