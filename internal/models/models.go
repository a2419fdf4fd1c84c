package models

import (
	"time"

	"bookmarkd/internal/reading"
)

// GoalKind tags which quantity a goal measures.
type GoalKind string

const (
	GoalKindBooks GoalKind = "books read"
	GoalKindPages GoalKind = "pages read"
	GoalKindHours GoalKind = "hours read"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Book is a shared catalog row: one Book may be referenced by many users'
// library entries and is not owned by any of them.
type Book struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Title         string  `gorm:"size:200;not null" json:"title"`
	Author        string  `gorm:"size:120;not null" json:"author"`
	PageCount     *int    `json:"total_pages"`
	Genre         string  `gorm:"size:50" json:"genre,omitempty"`
	OpenLibraryID *string `gorm:"size:40;uniqueIndex" json:"open_library_id"`
}

// UserBook associates a user with a catalog Book, carrying personal reading
// state. The (user_id, book_id) unique index is the duplicate-add guard;
// status is derived from PageProgress and never stored.
type UserBook struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_book" json:"user_id"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BookID       uint      `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Book         Book      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PageProgress int       `gorm:"not null;default:0" json:"page_progress"`
	Rating       *float64  `json:"rating"`
	AddedAt      time.Time `gorm:"not null" json:"added_at"`
}

// Goal is a single entity covering all three goal kinds. Duration, due date
// and progress are first-class columns computed at creation; the description
// still embeds the duration token for rows that predate the structured
// columns.
type Goal struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      uint             `gorm:"not null;index" json:"user_id"`
	User        User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Kind        GoalKind         `gorm:"size:20;not null" json:"type"`
	Amount      int              `gorm:"not null" json:"total"`
	Description string           `gorm:"size:255" json:"description"`
	Duration    reading.Duration `gorm:"size:20" json:"duration"`
	DueDate     *time.Time       `json:"due_date"`
	Progress    int              `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Club struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Slug        string    `gorm:"size:140;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClubMembership records a user's membership in a club. The unique index
// makes joining idempotent at the store level.
type ClubMembership struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_club" json:"user_id"`
	User     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ClubID   uint      `gorm:"not null;uniqueIndex:idx_user_club" json:"club_id"`
	Club     Club      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

type ClubPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClubID    uint      `gorm:"not null;index" json:"club_id"`
	Club      Club      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type ClubComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      ClubPost  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
