package domain

import "time"

// Project is the top-level board container. It owns its board lists and
// its membership roster; deleting a project deletes both subtrees.
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectMember is a roster entry. user_id is an external identifier and
// is not validated against a user table. (project_id, user_id) is unique.
type ProjectMember struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`
}
