package model

import "time"

// Response projections. Every shape returned over the API is produced by an
// explicit function from the full entity, so the password hash and other
// private columns can never leak through serialization.

// UserResponse is the full public-safe view of a user.
type UserResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	TC                 bool       `json:"tc"`
	ProfilePic         *string    `json:"profile_pic"`
	CoverPic           *string    `json:"cover_pic"`
	Bio                *string    `json:"bio"`
	Location           *string    `json:"location"`
	Work               *string    `json:"work"`
	Study              *string    `json:"study"`
	RelationshipStatus string     `json:"relationship_status"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	CreatedAt          time.Time  `json:"created_at"`
}

// FriendRequestResponse embeds both endpoints as full user views.
type FriendRequestResponse struct {
	ID        string       `json:"id"`
	FromUser  UserResponse `json:"from_user"`
	ToUser    UserResponse `json:"to_user"`
	Timestamp time.Time    `json:"timestamp"`
	Accepted  bool         `json:"accepted"`
	Rejected  bool         `json:"rejected"`
}

// PostResponse is a post with its author projected.
type PostResponse struct {
	ID        string       `json:"id"`
	User      UserResponse `json:"user"`
	Content   *string      `json:"content"`
	Image     *string      `json:"image"`
	CreatedAt time.Time    `json:"created_at"`
}

// LikeResponse is a like with the liking user projected.
type LikeResponse struct {
	ID        string       `json:"id"`
	User      UserResponse `json:"user"`
	PostID    string       `json:"post_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// CommentResponse is a comment with its author projected.
type CommentResponse struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		TC:                 u.TC,
		ProfilePic:         u.ProfilePic,
		CoverPic:           u.CoverPic,
		Bio:                u.Bio,
		Location:           u.Location,
		Work:               u.Work,
		Study:              u.Study,
		RelationshipStatus: u.RelationshipStatus,
		DateOfBirth:        u.DateOfBirth,
		CreatedAt:          u.CreatedAt,
	}
}

func ToUserResponses(users []*User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

func ToFriendRequestResponse(fr *FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:        fr.ID,
		FromUser:  ToUserResponse(&fr.FromUser),
		ToUser:    ToUserResponse(&fr.ToUser),
		Timestamp: fr.CreatedAt,
		Accepted:  fr.Accepted,
		Rejected:  fr.Rejected,
	}
}

func ToFriendRequestResponses(requests []*FriendRequest) []FriendRequestResponse {
	out := make([]FriendRequestResponse, 0, len(requests))
	for _, fr := range requests {
		out = append(out, ToFriendRequestResponse(fr))
	}
	return out
}

func ToPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		User:      ToUserResponse(&p.User),
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

func ToPostResponses(posts []*Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return out
}

func ToLikeResponse(l *Like) LikeResponse {
	return LikeResponse{
		ID:        l.ID,
		User:      ToUserResponse(&l.User),
		PostID:    l.PostID,
		CreatedAt: l.CreatedAt,
	}
}

func ToLikeResponses(likes []*Like) []LikeResponse {
	out := make([]LikeResponse, 0, len(likes))
	for _, l := range likes {
		out = append(out, ToLikeResponse(l))
	}
	return out
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		User:      ToUserResponse(&c.User),
		CreatedAt: c.CreatedAt,
	}
}

func ToCommentResponses(comments []*Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentResponse(c))
	}
	return out
}
