package models

import (
	"time"
)

// Blog post publication states.
const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

// DefaultAuthor is used when a post is created without an explicit author.
const DefaultAuthor = "Rajeev Mittal"

// BlogPost represents a blog article on the marketing site.
// Slug and ReadTime are always server-derived, never client-supplied.
type BlogPost struct {
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Title           string    `gorm:"size:255;not null;column:title" json:"title"`
	Slug            string    `gorm:"size:255;uniqueIndex;not null;column:slug" json:"slug"`
	Excerpt         string    `gorm:"type:text;column:excerpt" json:"excerpt"`
	Content         string    `gorm:"type:text;not null;column:content" json:"content"`
	FeaturedImage   string    `gorm:"type:text;column:featured_image" json:"featuredImage"`
	Author          string    `gorm:"size:100;column:author" json:"author"`
	Category        string    `gorm:"size:100;column:category" json:"category"`
	Status          string    `gorm:"size:20;index;default:'draft';column:status" json:"status"`
	MetaDescription string    `gorm:"size:255;column:meta_description" json:"metaDescription"`
	Tags            []string  `gorm:"type:text[];column:tags" json:"tags"`
	ReadTime        int       `gorm:"not null;default:1;column:read_time" json:"readTime"`
	Featured        bool      `gorm:"index;column:featured" json:"featured"`
	ID              int64     `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for blog posts.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// IsPublished reports whether the post is visible on the public site.
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}
