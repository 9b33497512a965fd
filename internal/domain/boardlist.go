package domain

import "time"

// BoardList is an ordered column within a project. Position is unique per
// project under the default creation path only; ad-hoc position updates may
// introduce gaps or duplicates, which are tolerated rather than repaired.
type BoardList struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
