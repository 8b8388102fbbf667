package handler

import (
	"time"

	"github.com/jhalloran/inkwell/internal/domain"
)

// postDTO is the JSON representation of a post.
type postDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Published   bool     `json:"published"`
	PublishedAt string   `json:"publishedAt"`
	CreatedAt   string   `json:"createdAt"`
}

func toPostDTO(p *domain.Post) postDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postDTO{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Author:      p.Author,
		Category:    p.Category,
		Tags:        tags,
		ImageURL:    p.CoverImageURL,
		Published:   p.Published,
		PublishedAt: p.PublishedAt.UTC().Format(time.RFC3339),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPostDTOs(posts []domain.Post) []postDTO {
	out := make([]postDTO, 0, len(posts))
	for i := range posts {
		out = append(out, toPostDTO(&posts[i]))
	}
	return out
}

// userDTO is the JSON representation of a user. The password hash
// never leaves the server.
type userDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	IsAdmin        bool   `json:"isAdmin"`
	CreatedAt      string `json:"createdAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		ProfilePicture: u.AvatarURL,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out
}

type statsDTO struct {
	TotalPosts     int `json:"totalPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
}
