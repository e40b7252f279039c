package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		fullName: "Test User",
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		FullName:     b.fullName,
		PasswordHash: string(hashedPassword),
		AvatarURL:    "/media/avatars/default.png",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the data field of the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user in the database, logs it in via
// the API, and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": user.Username,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return user, envelope.Data.AccessToken
}

// VideoBuilder creates test videos with a builder pattern
type VideoBuilder struct {
	owner       *domain.User
	title       string
	description string
	duration    float64
	views       int64
	published   bool
	createdAt   time.Time
}

// NewVideoBuilder creates a new VideoBuilder with default values
func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		title:       fmt.Sprintf("Test Video %s", uuid.New().String()[:8]),
		description: "A test video",
		duration:    120.5,
		published:   true,
		createdAt:   time.Now(),
	}
}

// WithOwner sets the video owner
func (b *VideoBuilder) WithOwner(user *domain.User) *VideoBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

// WithViews sets the view count
func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

// WithPublished sets the publish flag
func (b *VideoBuilder) WithPublished(published bool) *VideoBuilder {
	b.published = published
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *VideoBuilder) WithCreatedAt(at time.Time) *VideoBuilder {
	b.createdAt = at
	return b
}

// Build creates the video in the database
func (b *VideoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Video {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	video := &domain.Video{
		ID:              uuid.New(),
		OwnerID:         b.owner.ID,
		Title:           b.title,
		Description:     b.description,
		VideoURL:        fmt.Sprintf("/media/videos/%s.mp4", uuid.New()),
		ThumbnailURL:    fmt.Sprintf("/media/thumbnails/%s.png", uuid.New()),
		DurationSeconds: b.duration,
		Views:           b.views,
		IsPublished:     b.published,
		CreatedAt:       b.createdAt,
		UpdatedAt:       b.createdAt,
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}

	return video
}

// SeedVideos creates N published test videos owned by the given user
func SeedVideos(t *testing.T, db *gorm.DB, owner *domain.User, count int) []*domain.Video {
	t.Helper()

	videos := make([]*domain.Video, count)
	for i := 0; i < count; i++ {
		videos[i] = NewVideoBuilder().
			WithOwner(owner).
			WithTitle(fmt.Sprintf("Seed Video %02d", i)).
			WithCreatedAt(time.Now().Add(time.Duration(i) * time.Second)).
			Build(t, db)
	}
	return videos
}

// CommentBuilder creates test comments
type CommentBuilder struct {
	video   *domain.Video
	owner   *domain.User
	content string
}

// NewCommentBuilder creates a new CommentBuilder with default values
func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{
		content: "A test comment",
	}
}

// WithVideo sets the commented video
func (b *CommentBuilder) WithVideo(video *domain.Video) *CommentBuilder {
	b.video = video
	return b
}

// WithOwner sets the comment author
func (b *CommentBuilder) WithOwner(user *domain.User) *CommentBuilder {
	b.owner = user
	return b
}

// WithContent sets the content
func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.content = content
	return b
}

// Build creates the comment in the database
func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}
	if b.video == nil {
		b.video = NewVideoBuilder().WithOwner(b.owner).Build(t, db)
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		VideoID:   b.video.ID,
		OwnerID:   b.owner.ID,
		Content:   b.content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}

// TweetBuilder creates test tweets
type TweetBuilder struct {
	owner   *domain.User
	content string
}

// NewTweetBuilder creates a new TweetBuilder with default values
func NewTweetBuilder() *TweetBuilder {
	return &TweetBuilder{
		content: "A test tweet",
	}
}

// WithOwner sets the tweet author
func (b *TweetBuilder) WithOwner(user *domain.User) *TweetBuilder {
	b.owner = user
	return b
}

// WithContent sets the content
func (b *TweetBuilder) WithContent(content string) *TweetBuilder {
	b.content = content
	return b
}

// Build creates the tweet in the database
func (b *TweetBuilder) Build(t *testing.T, db *gorm.DB) *domain.Tweet {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   b.owner.ID,
		Content:   b.content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("failed to create tweet: %v", err)
	}

	return tweet
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// MultipartField is one part of a multipart request: a plain form value
// when Content is nil, a file upload otherwise.
type MultipartField struct {
	Name     string
	Value    string
	Filename string
	Content  []byte
}

// CreateMultipartRequest builds a multipart/form-data request with the
// given fields and optional auth token
func CreateMultipartRequest(t *testing.T, method, url string, fields []MultipartField, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range fields {
		if f.Content == nil {
			if err := writer.WriteField(f.Name, f.Value); err != nil {
				t.Fatalf("failed to write form field %s: %v", f.Name, err)
			}
			continue
		}
		part, err := writer.CreateFormFile(f.Name, f.Filename)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", f.Name, err)
		}
		if _, err := io.Copy(part, bytes.NewReader(f.Content)); err != nil {
			t.Fatalf("failed to write form file %s: %v", f.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
