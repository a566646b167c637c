package domain

// Authority is a catalog-defined role grant referenced by accounts.
type Authority struct {
	Name string
}

const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)
