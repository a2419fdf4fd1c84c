package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"bookmarkd/internal/models"
	"bookmarkd/internal/repositories"
)

const (
	feedDefaultPerPage = 20
	feedMaxPerPage     = 50

	// slugMaxAttempts bounds the suffix retry loop when concurrent creates
	// collide on the same base slug.
	slugMaxAttempts = 50
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// PostDetails is a club post with its author and nested comments.
type PostDetails struct {
	ID        uint             `json:"id"`
	ClubID    uint             `json:"club_id"`
	Author    string           `json:"author"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Comments  []CommentDetails `json:"comments"`
}

type CommentDetails struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ClubDetails is a club joined with its member count.
type ClubDetails struct {
	models.Club
	MemberCount int64 `json:"member_count"`
}

// FeedPage is one page of a club's feed, newest posts first.
type FeedPage struct {
	Posts      []PostDetails `json:"posts"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPosts int64         `json:"total_posts"`
}

// ClubService manages reading clubs: creation, membership, posts and
// comments.
type ClubService interface {
	ListClubs() ([]models.Club, error)
	ListUserClubs(userID uint) ([]models.Club, error)
	CreateClub(userID uint, name, description string) (*models.Club, error)
	GetClub(slug string) (*ClubDetails, error)
	// JoinClub is idempotent; joined reports whether a new membership row
	// was created.
	JoinClub(userID uint, slug string) (joined bool, err error)
	CreatePost(userID uint, slug, body string) (*PostDetails, error)
	Feed(userID uint, slug string, page, perPage int) (*FeedPage, error)
	CreateComment(userID, postID uint, body string) (*CommentDetails, error)
}

type clubService struct {
	db             *gorm.DB
	clubRepo       repositories.ClubRepository
	membershipRepo repositories.MembershipRepository
	postRepo       repositories.PostRepository
	commentRepo    repositories.CommentRepository
}

func NewClubService(
	db *gorm.DB,
	clubRepo repositories.ClubRepository,
	membershipRepo repositories.MembershipRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
) ClubService {
	return &clubService{
		db:             db,
		clubRepo:       clubRepo,
		membershipRepo: membershipRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
}

func (s *clubService) ListClubs() ([]models.Club, error) {
	return s.clubRepo.List(nil)
}

func (s *clubService) ListUserClubs(userID uint) ([]models.Club, error) {
	return s.clubRepo.ListByUser(nil, userID)
}

// CreateClub creates the club and the creator's membership in one
// transaction. Slug uniqueness relies on the store constraint: on collision
// the insert is retried with an incrementing suffix rather than pre-checked,
// so concurrent creates of the same name cannot race each other.
func (s *clubService) CreateClub(userID uint, name, description string) (*models.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("club name is required")
	}

	var club *models.Club
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createClubWithSlugRetry(tx, name, description)
		if err != nil {
			return err
		}
		club = created

		membership := &models.ClubMembership{
			UserID: userID,
			ClubID: club.ID,
		}
		if err := s.membershipRepo.Create(tx, membership); err != nil {
			log.Printf("[ERROR] CreateClub: failed to create creator membership for club %d: %v", club.ID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] CreateClub: user %d created club %q (slug=%s)", userID, club.Name, club.Slug)
	return club, nil
}

func (s *clubService) GetClub(slug string) (*ClubDetails, error) {
	club, err := s.findClub(slug)
	if err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.CountByClub(nil, club.ID)
	if err != nil {
		return nil, err
	}
	return &ClubDetails{Club: *club, MemberCount: members}, nil
}

func (s *clubService) findClub(slug string) (*models.Club, error) {
	club, err := s.clubRepo.GetBySlug(nil, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

// JoinClub inserts the membership and treats the unique-constraint violation
// as "already a member": joining twice succeeds both times and leaves exactly
// one row.
func (s *clubService) JoinClub(userID uint, slug string) (bool, error) {
	club, err := s.findClub(slug)
	if err != nil {
		return false, err
	}
	membership := &models.ClubMembership{
		UserID: userID,
		ClubID: club.ID,
	}
	if err := s.membershipRepo.Create(nil, membership); err != nil {
		if repositories.IsUniqueViolation(err) {
			log.Printf("[INFO] JoinClub: user %d already a member of club %d", userID, club.ID)
			return false, nil
		}
		log.Printf("[ERROR] JoinClub: failed for user %d / club %d: %v", userID, club.ID, err)
		return false, err
	}
	log.Printf("[INFO] JoinClub: user %d joined club %d", userID, club.ID)
	return true, nil
}

func (s *clubService) CreatePost(userID uint, slug, body string) (*PostDetails, error) {
	if strings.TrimSpace(body) == "" {
		return nil, validationErrorf("body is required")
	}
	club, err := s.findClub(slug)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(userID, club.ID); err != nil {
		return nil, err
	}

	post := &models.ClubPost{
		ClubID:   club.ID,
		AuthorID: userID,
		Body:     body,
	}
	if err := s.postRepo.Create(nil, post); err != nil {
		log.Printf("[ERROR] CreatePost: failed for user %d / club %d: %v", userID, club.ID, err)
		return nil, err
	}

	created, err := s.postRepo.GetByID(nil, post.ID)
	if err != nil {
		return nil, err
	}
	details := postDetails(created, nil)
	return &details, nil
}

// Feed returns one page of the club's posts, newest first, with nested
// comments. Member-only.
func (s *clubService) Feed(userID uint, slug string, page, perPage int) (*FeedPage, error) {
	club, err := s.findClub(slug)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(userID, club.ID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = feedDefaultPerPage
	}
	if perPage > feedMaxPerPage {
		perPage = feedMaxPerPage
	}

	total, err := s.postRepo.CountByClub(nil, club.ID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByClub(nil, club.ID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	comments, err := s.commentRepo.ListByPosts(nil, postIDs)
	if err != nil {
		return nil, err
	}
	commentsByPost := make(map[uint][]CommentDetails)
	for i := range comments {
		c := &comments[i]
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], commentDetails(c))
	}

	feed := &FeedPage{
		Posts:      make([]PostDetails, 0, len(posts)),
		Page:       page,
		PerPage:    perPage,
		TotalPosts: total,
	}
	for i := range posts {
		feed.Posts = append(feed.Posts, postDetails(&posts[i], commentsByPost[posts[i].ID]))
	}
	return feed, nil
}

// CreateComment adds a comment to a post; the author must be a member of the
// post's club.
func (s *clubService) CreateComment(userID, postID uint, body string) (*CommentDetails, error) {
	if strings.TrimSpace(body) == "" {
		return nil, validationErrorf("body is required")
	}
	post, err := s.postRepo.GetByID(nil, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if err := s.requireMembership(userID, post.ClubID); err != nil {
		return nil, err
	}

	comment := &models.ClubComment{
		PostID:   post.ID,
		AuthorID: userID,
		Body:     body,
	}
	if err := s.commentRepo.Create(nil, comment); err != nil {
		log.Printf("[ERROR] CreateComment: failed for user %d / post %d: %v", userID, postID, err)
		return nil, err
	}

	created, err := s.commentRepo.GetByID(nil, comment.ID)
	if err != nil {
		return nil, err
	}
	details := commentDetails(created)
	return &details, nil
}

func postDetails(post *models.ClubPost, comments []CommentDetails) PostDetails {
	if comments == nil {
		comments = []CommentDetails{}
	}
	return PostDetails{
		ID:        post.ID,
		ClubID:    post.ClubID,
		Author:    post.Author.Username,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		Comments:  comments,
	}
}

func commentDetails(comment *models.ClubComment) CommentDetails {
	return CommentDetails{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    comment.Author.Username,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func (s *clubService) requireMembership(userID, clubID uint) error {
	isMember, err := s.membershipRepo.Exists(nil, userID, clubID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotClubMember
	}
	return nil
}

// createClubWithSlugRetry inserts the club under its base slug, then under
// "-1", "-2", ... suffixes while the unique constraint rejects it.
func (s *clubService) createClubWithSlugRetry(tx *gorm.DB, name, description string) (*models.Club, error) {
	base := slugify(name)
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		slug := base
		if attempt > 0 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		club := &models.Club{
			Name:        name,
			Slug:        slug,
			Description: description,
		}
		// Nested Transaction uses a savepoint, so a rejected insert does
		// not poison the outer transaction before the retry.
		err := tx.Transaction(func(inner *gorm.DB) error {
			return s.clubRepo.Create(inner, club)
		})
		if err == nil {
			return club, nil
		}
		if !repositories.IsUniqueViolation(err) {
			log.Printf("[ERROR] CreateClub: failed to create club %q: %v", name, err)
			return nil, err
		}
		log.Printf("[WARN] CreateClub: slug %q taken, retrying with suffix", slug)
	}
	return nil, fmt.Errorf("could not find a free slug for club name %q", name)
}

// slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "club"
	}
	return slug
}
