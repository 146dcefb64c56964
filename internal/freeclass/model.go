package freeclass

import "time"

// Allocation is one grant of free classes. The member's pool is the sum of
// quantities across their allocation rows.
type Allocation struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type GrantRequest struct {
	MemberID int `json:"member_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type PoolResponse struct {
	MemberID  int `json:"member_id"`
	Remaining int `json:"remaining"`
}
