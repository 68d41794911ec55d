package store

import (
	"context"
	"strings"

	"github.com/ayodele/storefront/auth"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UsersFilter narrows account listings
type UsersFilter struct {
	Page  int
	Limit int
	// Banned nil lists every account, otherwise filters on the flag
	Banned *bool
	Role   auth.Role
}

// UserPage is one page of accounts plus the total page count
type UserPage struct {
	Users []*User `json:"users"`
	Pages int     `json:"pages"`
}

type Users interface {
	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	List(ctx context.Context, filter UsersFilter) (*UserPage, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*User, error)
	SetBannedTx(ctx context.Context, tx bun.IDB, id uuid.UUID, banned bool) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) List(ctx context.Context, filter UsersFilter) (*UserPage, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)

	var records []*User
	q := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit)

	if filter.Banned != nil {
		q.Where("?TableAlias.banned = ?", *filter.Banned)
	}
	if filter.Role != "" {
		q.Where("?TableAlias.user_role = ?", string(filter.Role))
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users: records,
		Pages: pageCount(count, limit),
	}, nil
}

func (a *users) SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*User, error) {
	return a.SetBannedTx(ctx, a.db, id, banned)
}

func (a *users) SetBannedTx(ctx context.Context, tx bun.IDB, id uuid.UUID, banned bool) (*User, error) {
	record := &User{
		ID:     id,
		Banned: banned,
	}

	res, err := tx.NewUpdate().
		Model(record).
		Column("banned").
		Where("id = ?", id.String()).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return a.Repository.GetByIdentifierTx(ctx, tx, id.String())
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = auth.RoleUser
	}

	record.Email = strings.ToLower(strings.TrimSpace(record.Email))

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

// normalizePaging clamps page and limit to sane values
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > DefaultFetchLimit {
		limit = DefaultFetchLimit
	}
	return page, limit
}

// pageCount is the number of pages needed for count records
func pageCount(count, limit int) int {
	if count == 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
