package freeclass

import "context"

type Repository interface {
	Grant(ctx context.Context, memberID, quantity int) (*Allocation, error)
	RemainingForMember(ctx context.Context, memberID int) (int, error)
	ConsumeOne(ctx context.Context, memberID int) (int, error)
	ListForMember(ctx context.Context, memberID int) ([]Allocation, error)
}
