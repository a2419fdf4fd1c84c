package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarkd/internal/models"
	"bookmarkd/internal/reading"
)

func TestAddBookValidation(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	type testCase struct {
		name    string
		params  AddBookParams
		wantErr string
	}
	testCases := []testCase{
		{
			name:    "missing title",
			params:  AddBookParams{Author: "Author1", TotalPages: intPtr(100)},
			wantErr: "title is required",
		},
		{
			name:    "missing author",
			params:  AddBookParams{Title: "Book1", TotalPages: intPtr(100)},
			wantErr: "author is required",
		},
		{
			name:    "missing total pages",
			params:  AddBookParams{Title: "Book1", Author: "Author1"},
			wantErr: "total_pages is required",
		},
		{
			name:    "non-positive total pages",
			params:  AddBookParams{Title: "Book1", Author: "Author1", TotalPages: intPtr(0)},
			wantErr: "total_pages must be a positive number",
		},
		{
			name: "negative progress",
			params: AddBookParams{
				Title: "Book1", Author: "Author1",
				TotalPages: intPtr(100), PageProgress: intPtr(-1),
			},
			wantErr: "page_progress must be non-negative",
		},
		{
			name: "progress beyond total",
			params: AddBookParams{
				Title: "Book1", Author: "Author1",
				TotalPages: intPtr(100), PageProgress: intPtr(101),
			},
			wantErr: "page_progress cannot exceed total_pages",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddBook(user.ID, tc.params)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantErr, validationErr.Message)
		})
	}
}

func TestAddBookDerivesStatus(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	details, err := svc.AddBook(user.ID, AddBookParams{
		Title:      "Book1",
		Author:     "Author1",
		TotalPages: intPtr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, reading.StatusWishlist, details.Status)
	assert.Equal(t, 0, details.PageProgress)
	require.NotNil(t, details.TotalPages)
	assert.Equal(t, 100, *details.TotalPages)
}

func TestAddBookDuplicateEntry(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	params := AddBookParams{
		Title:         "Dune",
		Author:        "Frank Herbert",
		TotalPages:    intPtr(896),
		OpenLibraryID: "OL893415W",
	}
	_, err := svc.AddBook(user.ID, params)
	require.NoError(t, err)

	_, err = svc.AddBook(user.ID, params)
	assert.ErrorIs(t, err, ErrDuplicateLibraryEntry)

	// The shared catalog row was reused, not duplicated.
	var bookCount int64
	require.NoError(t, db.Model(&models.Book{}).Count(&bookCount).Error)
	assert.EqualValues(t, 1, bookCount)

	// Another user can still add the same catalog book.
	other := createTestUser(t, db, "other")
	_, err = svc.AddBook(other.ID, params)
	assert.NoError(t, err)
}

func TestAddBookWithoutCatalogIDCreatesNewBook(t *testing.T) {
	db := setupDB(t)
	svc := newLibraryService(db)
	userA := createTestUser(t, db, "a")
	userB := createTestUser(t, db, "b")

	params := AddBookParams{Title: "Dune", Author: "Frank Herbert", TotalPages: intPtr(896)}
	_, err := svc.AddBook(userA.ID, params)
	require.NoError(t, err)
	_, err = svc.AddBook(userB.ID, params)
	require.NoError(t, err)

	// No title/author dedup: each add creates its own catalog row.
	var bookCount int64
	require.NoError(t, db.Model(&models.Book{}).Count(&bookCount).Error)
	assert.EqualValues(t, 2, bookCount)
}

func TestUpdateProgress(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	details, err := svc.AddBook(user.ID, AddBookParams{
		Title: "Book1", Author: "Author1", TotalPages: intPtr(100),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(user.ID, details.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, reading.StatusReading, updated.Status)
	assert.Equal(t, 50, updated.PageProgress)

	updated, err = svc.UpdateProgress(user.ID, details.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, reading.StatusRead, updated.Status)

	_, err = svc.UpdateProgress(user.ID, details.ID, 101)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "page_progress cannot exceed total_pages", validationErr.Message)

	_, err = svc.UpdateProgress(user.ID, 9999, 10)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdateRatingGatedOnReadStatus(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	details, err := svc.AddBook(user.ID, AddBookParams{
		Title: "Book1", Author: "Author1",
		TotalPages: intPtr(100), PageProgress: intPtr(50),
	})
	require.NoError(t, err)

	_, err = svc.UpdateRating(user.ID, details.ID, 4.5)
	assert.ErrorIs(t, err, ErrRatingNotAllowed)

	_, err = svc.UpdateProgress(user.ID, details.ID, 100)
	require.NoError(t, err)

	rated, err := svc.UpdateRating(user.ID, details.ID, 4.5)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4.5, *rated.Rating)

	_, err = svc.UpdateRating(user.ID, details.ID, 5.5)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRemoveBookKeepsCatalogRow(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	details, err := svc.AddBook(user.ID, AddBookParams{
		Title: "Book1", Author: "Author1", TotalPages: intPtr(100),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveBook(user.ID, details.ID))

	list, err := svc.ListBooks(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	var bookCount int64
	require.NoError(t, db.Model(&models.Book{}).Count(&bookCount).Error)
	assert.EqualValues(t, 1, bookCount)

	assert.ErrorIs(t, svc.RemoveBook(user.ID, details.ID), ErrBookNotFound)
}

func TestListBooks(t *testing.T) {
	db := setupDB(t)
	user := createTestUser(t, db, "reader")
	svc := newLibraryService(db)

	_, err := svc.AddBook(user.ID, AddBookParams{
		Title: "Book1", Author: "Author1", TotalPages: intPtr(100),
	})
	require.NoError(t, err)
	_, err = svc.AddBook(user.ID, AddBookParams{
		Title: "Book2", Author: "Author2", TotalPages: intPtr(200), PageProgress: intPtr(200),
	})
	require.NoError(t, err)

	list, err := svc.ListBooks(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, reading.StatusWishlist, list[0].Status)
	assert.Equal(t, reading.StatusRead, list[1].Status)
}
