// Package seed populates an empty database with demo users, books, clubs,
// library entries and goals. It runs behind the SEED_DEMO_DATA flag and is
// idempotent: a database that already has users is left untouched.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/models"
	"bookmarkd/internal/reading"
)

const (
	numUsers        = 20
	maxBooksPerUser = 8
	maxClubsPerUser = 2

	// randomSeed keeps demo runs reproducible.
	randomSeed = 42

	demoPassword = "password123"
)

var firstNames = []string{
	"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Hank",
	"Ivy", "Jack", "Kara", "Liam", "Mia", "Noah", "Olivia", "Pete",
	"Quinn", "Riley", "Sara", "Theo", "Uma", "Vera", "Wade", "Zara",
}

var lastNames = []string{
	"Anderson", "Brown", "Carter", "Davis", "Evans", "Foster", "Garcia",
	"Hughes", "Johnson", "Kim", "Lopez", "Miller", "Nolan", "Owens",
	"Patel", "Reed", "Smith", "Turner", "Vega", "Williams", "Xu", "Young",
}

type seedBook struct {
	title  string
	author string
	pages  int
	genre  string
}

var seedBooks = []seedBook{
	{"Clean Code", "Robert C. Martin", 464, "Programming"},
	{"The Pragmatic Programmer", "Andrew Hunt, David Thomas", 352, "Programming"},
	{"Fluent Python", "Luciano Ramalho", 792, "Programming"},
	{"Design Patterns", "Erich Gamma et al.", 395, "Programming"},
	{"Atomic Habits", "James Clear", 320, "Self-Help"},
	{"Sapiens", "Yuval Noah Harari", 498, "Nonfiction"},
	{"Educated", "Tara Westover", 352, "Biography"},
	{"Thinking, Fast and Slow", "Daniel Kahneman", 512, "Nonfiction"},
	{"Range", "David Epstein", 352, "Nonfiction"},
	{"The Night Circus", "Erin Morgenstern", 512, "Fantasy"},
	{"Dune", "Frank Herbert", 896, "Sci-Fi"},
	{"The Name of the Wind", "Patrick Rothfuss", 662, "Fantasy"},
	{"The Silent Patient", "Alex Michaelides", 336, "Mystery"},
	{"Project Hail Mary", "Andy Weir", 496, "Sci-Fi"},
	{"The Seven Husbands of Evelyn Hugo", "Taylor Jenkins Reid", 400, "Romance"},
	{"Circe", "Madeline Miller", 400, "Fantasy"},
}

type seedClub struct {
	name        string
	description string
}

var seedClubs = []seedClub{
	{"Readers United", "A club for every kind of reader"},
	{"Midnight Mystery Crew", "Whodunits and thrillers, discussed after dark"},
	{"Space & Sci-Fi Circle", "From Dune to Project Hail Mary"},
	{"Rom-Com Readers", "Love stories, happy endings guaranteed"},
	{"Code & Coffee", "Technical books over strong coffee"},
	{"Page Turners", "One book a month, no pressure"},
}

// Run seeds the database if it is empty. Safe to call on every startup.
func Run(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Printf("[INFO] seed: database already has %d users, skipping", userCount)
		return nil
	}

	rng := rand.New(rand.NewSource(randomSeed))

	passwordHash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := make([]models.User, 0, numUsers)
		for i := 0; i < numUsers; i++ {
			first := firstNames[rng.Intn(len(firstNames))]
			last := lastNames[rng.Intn(len(lastNames))]
			username := fmt.Sprintf("%s%s%d", first, last, i)
			user := models.User{
				Username:     username,
				Email:        fmt.Sprintf("%s@example.com", username),
				PasswordHash: passwordHash,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			users = append(users, user)
		}

		books := make([]models.Book, 0, len(seedBooks))
		for _, sb := range seedBooks {
			pages := sb.pages
			book := models.Book{
				Title:     sb.title,
				Author:    sb.author,
				PageCount: &pages,
				Genre:     sb.genre,
			}
			if err := tx.Create(&book).Error; err != nil {
				return err
			}
			books = append(books, book)
		}

		clubs := make([]models.Club, 0, len(seedClubs))
		for _, sc := range seedClubs {
			club := models.Club{
				Name:        sc.name,
				Slug:        slugFromName(sc.name),
				Description: sc.description,
			}
			if err := tx.Create(&club).Error; err != nil {
				return err
			}
			clubs = append(clubs, club)
		}

		now := time.Now()
		for _, user := range users {
			for _, bookIdx := range rng.Perm(len(books))[:rng.Intn(maxBooksPerUser)+1] {
				book := books[bookIdx]
				progress := rng.Intn(*book.PageCount + 1)
				entry := models.UserBook{
					UserID:       user.ID,
					BookID:       book.ID,
					PageProgress: progress,
					AddedAt:      now.AddDate(0, 0, -rng.Intn(120)),
				}
				if progress >= *book.PageCount {
					rating := float64(rng.Intn(9)+2) / 2 // 1.0 .. 5.0
					entry.Rating = &rating
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}

			for _, clubIdx := range rng.Perm(len(clubs))[:rng.Intn(maxClubsPerUser+1)] {
				membership := models.ClubMembership{
					UserID:   user.ID,
					ClubID:   clubs[clubIdx].ID,
					JoinedAt: now.AddDate(0, 0, -rng.Intn(90)),
				}
				if err := tx.Create(&membership).Error; err != nil {
					return err
				}
			}

			// Roughly three quarters of users get a goal.
			if rng.Intn(4) != 0 {
				if err := tx.Create(demoGoal(rng, user.ID, now)).Error; err != nil {
					return err
				}
			}
		}

		log.Printf("[INFO] seed: created %d users, %d books, %d clubs", len(users), len(books), len(clubs))
		return nil
	})
}

func demoGoal(rng *rand.Rand, userID uint, now time.Time) *models.Goal {
	kinds := []models.GoalKind{models.GoalKindBooks, models.GoalKindPages, models.GoalKindHours}
	kind := kinds[rng.Intn(len(kinds))]

	var amount int
	var unit string
	switch kind {
	case models.GoalKindBooks:
		amount = rng.Intn(40) + 5
		unit = "books"
	case models.GoalKindPages:
		amount = (rng.Intn(40) + 5) * 100
		unit = "pages"
	default:
		amount = (rng.Intn(10) + 1) * 10
		unit = "hours"
	}

	token := reading.Durations[rng.Intn(len(reading.Durations))]
	due := reading.DueDate(token, now)
	return &models.Goal{
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Description: fmt.Sprintf("Read %d %s %s", amount, unit, reading.Describe(token, now)),
		Duration:    token,
		DueDate:     &due,
		Progress:    0,
	}
}

// slugFromName is a simplified slugify for the fixed club names above, which
// contain only letters, spaces and the '&' character.
func slugFromName(name string) string {
	slug := make([]rune, 0, len(name))
	lastHyphen := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+'a'-'A')
			lastHyphen = false
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			slug = append(slug, r)
			lastHyphen = false
		default:
			if !lastHyphen && len(slug) > 0 {
				slug = append(slug, '-')
				lastHyphen = true
			}
		}
	}
	for len(slug) > 0 && slug[len(slug)-1] == '-' {
		slug = slug[:len(slug)-1]
	}
	return string(slug)
}
