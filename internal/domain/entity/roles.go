package entity

// Role ids carried in JWT claims minted by the external auth service.
// Admins may overwrite a slot's procedure base name; schedulers edit
// everything else.
const (
	RoleIDAdmin     = 1
	RoleIDScheduler = 2
)
