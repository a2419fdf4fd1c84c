package repositories

import (
	"time"

	"gorm.io/gorm"

	"bookmarkd/internal/models"
)

type ClubRepository interface {
	Create(db *gorm.DB, club *models.Club) error
	List(db *gorm.DB) ([]models.Club, error)
	GetBySlug(db *gorm.DB, slug string) (*models.Club, error)
	ListByUser(db *gorm.DB, userID uint) ([]models.Club, error)
}

type MembershipRepository interface {
	Create(db *gorm.DB, membership *models.ClubMembership) error
	Exists(db *gorm.DB, userID, clubID uint) (bool, error)
	CountByClub(db *gorm.DB, clubID uint) (int64, error)
}

type PostRepository interface {
	Create(db *gorm.DB, post *models.ClubPost) error
	GetByID(db *gorm.DB, id uint) (*models.ClubPost, error)
	ListByClub(db *gorm.DB, clubID uint, offset, limit int) ([]models.ClubPost, error)
	CountByClub(db *gorm.DB, clubID uint) (int64, error)
}

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.ClubComment) error
	GetByID(db *gorm.DB, id uint) (*models.ClubComment, error)
	ListByPosts(db *gorm.DB, postIDs []uint) ([]models.ClubComment, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(db *gorm.DB, club *models.Club) error {
	if db == nil {
		db = r.db
	}
	return db.Create(club).Error
}

func (r *clubRepository) List(db *gorm.DB) ([]models.Club, error) {
	if db == nil {
		db = r.db
	}
	var clubs []models.Club
	if err := db.Order("name ASC").Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *clubRepository) GetBySlug(db *gorm.DB, slug string) (*models.Club, error) {
	if db == nil {
		db = r.db
	}
	var club models.Club
	if err := db.First(&club, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) ListByUser(db *gorm.DB, userID uint) ([]models.Club, error) {
	if db == nil {
		db = r.db
	}
	var clubs []models.Club
	err := db.
		Joins("JOIN club_memberships ON club_memberships.club_id = clubs.id").
		Where("club_memberships.user_id = ?", userID).
		Order("clubs.name ASC").
		Find(&clubs).Error
	if err != nil {
		return nil, err
	}
	return clubs, nil
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(db *gorm.DB, membership *models.ClubMembership) error {
	if db == nil {
		db = r.db
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}
	return db.Create(membership).Error
}

func (r *membershipRepository) Exists(db *gorm.DB, userID, clubID uint) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.ClubMembership{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) CountByClub(db *gorm.DB, clubID uint) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.ClubMembership{}).
		Where("club_id = ?", clubID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(db *gorm.DB, post *models.ClubPost) error {
	if db == nil {
		db = r.db
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	return db.Create(post).Error
}

func (r *postRepository) GetByID(db *gorm.DB, id uint) (*models.ClubPost, error) {
	if db == nil {
		db = r.db
	}
	var post models.ClubPost
	if err := db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByClub(db *gorm.DB, clubID uint, offset, limit int) ([]models.ClubPost, error) {
	if db == nil {
		db = r.db
	}
	var posts []models.ClubPost
	err := db.Preload("Author").
		Where("club_id = ?", clubID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByClub(db *gorm.DB, clubID uint) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.ClubPost{}).
		Where("club_id = ?", clubID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.ClubComment) error {
	if db == nil {
		db = r.db
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	return db.Create(comment).Error
}

func (r *commentRepository) GetByID(db *gorm.DB, id uint) (*models.ClubComment, error) {
	if db == nil {
		db = r.db
	}
	var comment models.ClubComment
	if err := db.Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPosts(db *gorm.DB, postIDs []uint) ([]models.ClubComment, error) {
	if db == nil {
		db = r.db
	}
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []models.ClubComment
	err := db.Preload("Author").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
