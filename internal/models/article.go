package models

import "time"

// ArticleStatus статус модерации статьи.
type ArticleStatus string

const (
	ArticlePending  ArticleStatus = "pending"
	ArticleApproved ArticleStatus = "approved"
	ArticleDeclined ArticleStatus = "declined"
)

// Article статья, отправленная автором на модерацию.
type Article struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image,omitempty"`
	Publisher   string        `json:"publisher"`
	AuthorEmail string        `json:"author_email"`
	Status      ArticleStatus `json:"status"`
	IsPremium   bool          `json:"is_premium"`
	Views       int64         `json:"views"`
	CreatedAt   time.Time     `json:"created_at"`
}

// DummyArticle используется для приёма статьи из JSON-запроса.
type DummyArticle struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image" validate:"omitempty,url"`
	Publisher   string `json:"publisher" validate:"required"`
}

// Publisher издатель, к которому привязываются статьи.
type Publisher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyPublisher используется для приёма издателя из JSON-запроса.
type DummyPublisher struct {
	Name    string `json:"name" validate:"required,max=100"`
	LogoURL string `json:"logo" validate:"omitempty,url"`
}
