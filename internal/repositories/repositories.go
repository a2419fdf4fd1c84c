package repositories

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"bookmarkd/internal/models"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	GetByUsername(db *gorm.DB, username string) (*models.User, error)
}

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	GetByOpenLibraryID(db *gorm.DB, openLibraryID string) (*models.Book, error)
}

type LibraryEntryRepository interface {
	Create(db *gorm.DB, entry *models.UserBook) error
	GetByUserAndBook(db *gorm.DB, userID, bookID uint) (*models.UserBook, error)
	ListByUser(db *gorm.DB, userID uint) ([]models.UserBook, error)
	UpdateProgress(db *gorm.DB, entryID uint, pageProgress int) error
	UpdateRating(db *gorm.DB, entryID uint, rating float64) error
	Delete(db *gorm.DB, entryID uint) error
}

// IsUniqueViolation reports whether err is a store-level unique-constraint
// violation. PostgreSQL signals these with SQLSTATE 23505; the sqlite driver
// used in tests reports "UNIQUE constraint failed".
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

// concrete implementations

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

func (r *userRepository) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *bookRepository) GetByOpenLibraryID(db *gorm.DB, openLibraryID string) (*models.Book, error) {
	if db == nil {
		db = r.db
	}
	var book models.Book
	if err := db.First(&book, "open_library_id = ?", openLibraryID).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

type libraryEntryRepository struct {
	db *gorm.DB
}

func NewLibraryEntryRepository(db *gorm.DB) LibraryEntryRepository {
	return &libraryEntryRepository{db: db}
}

func (r *libraryEntryRepository) Create(db *gorm.DB, entry *models.UserBook) error {
	if db == nil {
		db = r.db
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	return db.Create(entry).Error
}

func (r *libraryEntryRepository) GetByUserAndBook(db *gorm.DB, userID, bookID uint) (*models.UserBook, error) {
	if db == nil {
		db = r.db
	}
	var entry models.UserBook
	err := db.Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *libraryEntryRepository) ListByUser(db *gorm.DB, userID uint) ([]models.UserBook, error) {
	if db == nil {
		db = r.db
	}
	var entries []models.UserBook
	err := db.Preload("Book").
		Where("user_id = ?", userID).
		Order("added_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *libraryEntryRepository) UpdateProgress(db *gorm.DB, entryID uint, pageProgress int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.UserBook{}).
		Where("id = ?", entryID).
		Update("page_progress", pageProgress).
		Error
}

func (r *libraryEntryRepository) UpdateRating(db *gorm.DB, entryID uint, rating float64) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.UserBook{}).
		Where("id = ?", entryID).
		Update("rating", rating).
		Error
}

func (r *libraryEntryRepository) Delete(db *gorm.DB, entryID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.UserBook{}, "id = ?", entryID).Error
}
