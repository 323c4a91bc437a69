package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyAbilities CtxKey = "Abilities"
	KeyTokenID   CtxKey = "TokenID"
	KeyActor     CtxKey = "Actor"
)
