package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"bookmarkd/internal/models"
	"bookmarkd/internal/reading"
	"bookmarkd/internal/repositories"
)

// AddBookParams is the validated-at-the-edge input for LibraryService.AddBook.
// Pointer fields distinguish "absent" from zero values.
type AddBookParams struct {
	Title         string
	Author        string
	TotalPages    *int
	PageProgress  *int
	OpenLibraryID string
	Genre         string
}

// BookDetails is a library entry joined with its catalog book and the derived
// status.
type BookDetails struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Status        reading.Status `json:"status"`
	OpenLibraryID *string        `json:"open_library_id"`
	PageProgress  int            `json:"page_progress"`
	TotalPages    *int           `json:"total_pages"`
	Rating        *float64       `json:"rating"`
}

// LibraryService manages a user's personal library: adding catalog books,
// tracking page progress and ratings.
type LibraryService interface {
	AddBook(userID uint, params AddBookParams) (*BookDetails, error)
	ListBooks(userID uint) ([]BookDetails, error)
	RemoveBook(userID, bookID uint) error
	UpdateProgress(userID, bookID uint, pageProgress int) (*BookDetails, error)
	UpdateRating(userID, bookID uint, rating float64) (*BookDetails, error)
}

type libraryService struct {
	db        *gorm.DB
	bookRepo  repositories.BookRepository
	entryRepo repositories.LibraryEntryRepository
}

func NewLibraryService(
	db *gorm.DB,
	bookRepo repositories.BookRepository,
	entryRepo repositories.LibraryEntryRepository,
) LibraryService {
	return &libraryService{
		db:        db,
		bookRepo:  bookRepo,
		entryRepo: entryRepo,
	}
}

// AddBook resolves or creates the shared catalog Book and inserts the user's
// library entry, all within a single transaction. Catalog resolution matches
// on OpenLibraryID when provided; otherwise a fresh Book row is always
// created (no title/author dedup). A duplicate (user, book) pair is rejected
// by the store's unique constraint rather than a pre-check, so concurrent
// adds cannot race past it.
func (s *libraryService) AddBook(userID uint, params AddBookParams) (*BookDetails, error) {
	if params.Title == "" {
		return nil, validationErrorf("title is required")
	}
	if params.Author == "" {
		return nil, validationErrorf("author is required")
	}
	if params.TotalPages == nil {
		return nil, validationErrorf("total_pages is required")
	}
	if *params.TotalPages <= 0 {
		return nil, validationErrorf("total_pages must be a positive number")
	}
	progress := 0
	if params.PageProgress != nil {
		progress = *params.PageProgress
	}
	if progress < 0 {
		return nil, validationErrorf("page_progress must be non-negative")
	}
	if progress > *params.TotalPages {
		return nil, validationErrorf("page_progress cannot exceed total_pages")
	}

	var book *models.Book
	var entry *models.UserBook

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if params.OpenLibraryID != "" {
			existing, err := s.bookRepo.GetByOpenLibraryID(tx, params.OpenLibraryID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			book = existing
		}

		if book == nil {
			olid := (*string)(nil)
			if params.OpenLibraryID != "" {
				olid = &params.OpenLibraryID
			}
			book = &models.Book{
				Title:         params.Title,
				Author:        params.Author,
				PageCount:     params.TotalPages,
				Genre:         params.Genre,
				OpenLibraryID: olid,
			}
			if err := s.bookRepo.Create(tx, book); err != nil {
				log.Printf("[ERROR] AddBook: failed to create catalog book %q: %v", params.Title, err)
				return err
			}
		}

		entry = &models.UserBook{
			UserID:       userID,
			BookID:       book.ID,
			PageProgress: progress,
		}
		if err := s.entryRepo.Create(tx, entry); err != nil {
			if repositories.IsUniqueViolation(err) {
				return ErrDuplicateLibraryEntry
			}
			log.Printf("[ERROR] AddBook: failed to create library entry for user %d / book %d: %v", userID, book.ID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] AddBook: user %d added book %q (id=%d)", userID, book.Title, book.ID)
	return entryDetails(entry, book), nil
}

// ListBooks returns every entry in the user's library with derived status and
// joined catalog fields.
func (s *libraryService) ListBooks(userID uint) ([]BookDetails, error) {
	entries, err := s.entryRepo.ListByUser(nil, userID)
	if err != nil {
		return nil, err
	}
	details := make([]BookDetails, 0, len(entries))
	for i := range entries {
		details = append(details, *entryDetails(&entries[i], &entries[i].Book))
	}
	return details, nil
}

// RemoveBook deletes only the (user, book) association; the catalog Book row
// persists for other holders.
func (s *libraryService) RemoveBook(userID, bookID uint) error {
	entry, err := s.entryRepo.GetByUserAndBook(nil, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	if err := s.entryRepo.Delete(nil, entry.ID); err != nil {
		log.Printf("[ERROR] RemoveBook: failed to delete entry %d: %v", entry.ID, err)
		return err
	}
	log.Printf("[INFO] RemoveBook: user %d removed book %d from library", userID, bookID)
	return nil
}

// UpdateProgress sets the user's page progress for a book and returns the
// entry with its recomputed status.
func (s *libraryService) UpdateProgress(userID, bookID uint, pageProgress int) (*BookDetails, error) {
	if pageProgress < 0 {
		return nil, validationErrorf("page_progress must be non-negative")
	}
	entry, err := s.entryRepo.GetByUserAndBook(nil, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if entry.Book.PageCount != nil && pageProgress > *entry.Book.PageCount {
		return nil, validationErrorf("page_progress cannot exceed total_pages")
	}
	if err := s.entryRepo.UpdateProgress(nil, entry.ID, pageProgress); err != nil {
		log.Printf("[ERROR] UpdateProgress: failed for entry %d: %v", entry.ID, err)
		return nil, err
	}
	entry.PageProgress = pageProgress
	return entryDetails(entry, &entry.Book), nil
}

// UpdateRating sets the user's rating for a book. Ratings are gated on the
// derived status: only a fully-read book may be rated.
func (s *libraryService) UpdateRating(userID, bookID uint, rating float64) (*BookDetails, error) {
	if rating < 0 || rating > 5 {
		return nil, validationErrorf("rating must be between 0 and 5")
	}
	entry, err := s.entryRepo.GetByUserAndBook(nil, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if reading.StatusFor(entry.PageProgress, entry.Book.PageCount) != reading.StatusRead {
		return nil, ErrRatingNotAllowed
	}
	if err := s.entryRepo.UpdateRating(nil, entry.ID, rating); err != nil {
		log.Printf("[ERROR] UpdateRating: failed for entry %d: %v", entry.ID, err)
		return nil, err
	}
	entry.Rating = &rating
	return entryDetails(entry, &entry.Book), nil
}

func entryDetails(entry *models.UserBook, book *models.Book) *BookDetails {
	return &BookDetails{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Status:        reading.StatusFor(entry.PageProgress, book.PageCount),
		OpenLibraryID: book.OpenLibraryID,
		PageProgress:  entry.PageProgress,
		TotalPages:    book.PageCount,
		Rating:        entry.Rating,
	}
}
