package store

import (
	"time"

	"github.com/ayodele/storefront/auth"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultFetchLimit caps list page sizes
const DefaultFetchLimit = 50

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          auth.Role  `bun:"user_role,notnull" json:"role,omitempty"`
	Banned        bool       `bun:"banned,notnull,default:false" json:"banned"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identity projects the account into the auth snapshot
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Banned: u.Banned,
	}
}

// Product is the catalog model. Approved is nil while the listing
// awaits moderation.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Quantity      int        `bun:"quantity,notnull,default:0" json:"quantity"`
	Price         int64      `bun:"price,notnull,default:0" json:"price"`
	MediaURLs     []string   `bun:"media_urls" json:"media_urls,omitempty"`
	Approved      *bool      `bun:"approved" json:"approved"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Pending reports whether the listing still awaits a moderation call
func (p *Product) Pending() bool {
	return p.Approved == nil
}
