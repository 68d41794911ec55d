package store

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApprovalFilter selects listings by moderation state
type ApprovalFilter string

const (
	ApprovalAny      ApprovalFilter = "all"
	ApprovalPending  ApprovalFilter = "pending"
	ApprovalApproved ApprovalFilter = "approved"
	ApprovalRejected ApprovalFilter = "rejected"
)

func (f ApprovalFilter) IsValid() bool {
	switch f {
	case ApprovalAny, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// ProductsFilter narrows catalog listings
type ProductsFilter struct {
	Page     int
	Limit    int
	Approval ApprovalFilter
	// UserID scopes the listing to one seller when set
	UserID uuid.UUID
}

// ProductPage is one page of listings plus the total page count
type ProductPage struct {
	Products []*Product `json:"products"`
	Pages    int        `json:"pages"`
}

// ProductPatch carries the seller-editable fields; nil means unchanged.
// Approval state is deliberately not part of the patch.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *int64   `json:"price"`
	MediaURLs   []string `json:"media_urls"`
}

func (p ProductPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Quantity == nil &&
		p.Price == nil && p.MediaURLs == nil
}

type Products interface {
	Add(ctx context.Context, product *Product) (*Product, error)
	AddTx(ctx context.Context, tx bun.IDB, product *Product) (*Product, error)
	List(ctx context.Context, filter ProductsFilter) (*ProductPage, error)
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch ProductPatch) (*Product, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Product, error)
	SetApprovalTx(ctx context.Context, tx bun.IDB, id uuid.UUID, approved bool) (*Product, error)
}

type products struct {
	repository.Repository[*Product]
	db *bun.DB
}

var _ Products = (*products)(nil)

func NewProductsRepository(db *bun.DB) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &products{
		Repository: repo,
		db:         db,
	}
}

func (a *products) Add(ctx context.Context, product *Product) (*Product, error) {
	return a.AddTx(ctx, a.db, product)
}

func (a *products) AddTx(ctx context.Context, tx bun.IDB, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	// new listings always enter moderation
	product.Approved = nil
	return a.Repository.CreateTx(ctx, tx, product)
}

func (a *products) List(ctx context.Context, filter ProductsFilter) (*ProductPage, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)

	var records []*Product
	q := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit)

	switch filter.Approval {
	case ApprovalPending:
		q.Where("?TableAlias.approved IS NULL")
	case ApprovalApproved:
		q.Where("?TableAlias.approved = ?", true)
	case ApprovalRejected:
		q.Where("?TableAlias.approved = ?", false)
	}

	if filter.UserID != uuid.Nil {
		q.Where("?TableAlias.user_id = ?", filter.UserID.String())
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products: records,
		Pages:    pageCount(count, limit),
	}, nil
}

// UpdateOwned applies the patch to a listing only if the owner matches.
// A listing belonging to somebody else reads as not found.
func (a *products) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch ProductPatch) (*Product, error) {
	if patch.IsZero() {
		return nil, goerrors.New("nothing to update", goerrors.CategoryBadInput)
	}

	record, err := a.getOwnedTx(ctx, a.db, ownerID, id)
	if err != nil {
		return nil, err
	}

	// explicit column list so zero values still persist
	columns := []string{"updated_at"}
	if patch.Name != nil {
		record.Name = *patch.Name
		columns = append(columns, "name")
	}
	if patch.Description != nil {
		record.Description = *patch.Description
		columns = append(columns, "description")
	}
	if patch.Quantity != nil {
		record.Quantity = *patch.Quantity
		columns = append(columns, "quantity")
	}
	if patch.Price != nil {
		record.Price = *patch.Price
		columns = append(columns, "price")
	}
	if patch.MediaURLs != nil {
		record.MediaURLs = patch.MediaURLs
		columns = append(columns, "media_urls")
	}

	now := time.Now()
	record.UpdatedAt = &now

	_, err = a.db.NewUpdate().
		Model(record).
		Column(columns...).
		Where("id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (a *products) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Product)(nil)).
		Where("id = ?", id.String()).
		Where("user_id = ?", ownerID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id":      id.String(),
				"user_id": ownerID.String(),
			})
	}

	return nil
}

func (a *products) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*Product, error) {
	return a.SetApprovalTx(ctx, a.db, id, approved)
}

func (a *products) SetApprovalTx(ctx context.Context, tx bun.IDB, id uuid.UUID, approved bool) (*Product, error) {
	res, err := tx.NewUpdate().
		Model((*Product)(nil)).
		Set("approved = ?", approved).
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

	return a.getTx(ctx, tx, id)
}

func (a *products) getTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *products) getOwnedTx(ctx context.Context, tx bun.IDB, ownerID, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Where("?TableAlias.user_id = ?", ownerID.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id":      id.String(),
					"user_id": ownerID.String(),
				})
		}
		return nil, err
	}

	return record, nil
}
