package store

import (
	"context"
	"errors"
	"strings"

	"github.com/emrgen/peps/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) GetPEP(ctx context.Context, number int) (*model.PEP, error) {
	var pep model.PEP
	err := g.db.WithContext(ctx).Preload("Authors").Where("number = ?", number).First(&pep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPEPNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pep, nil
}

func (g *GormStore) ListPEPs(ctx context.Context, skip, limit int) ([]*model.PEP, int64, error) {
	var total int64
	if err := g.db.WithContext(ctx).Model(&model.PEP{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	peps := make([]*model.PEP, 0)
	err := g.db.WithContext(ctx).Preload("Authors").Offset(skip).Limit(limit).Find(&peps).Error
	if err != nil {
		return nil, 0, err
	}

	return peps, total, nil
}

// SearchPEPs matches the title with a bound LIKE parameter. Lowercasing both
// sides keeps the match case-insensitive on sqlite and postgres alike.
func (g *GormStore) SearchPEPs(ctx context.Context, query string) ([]*model.PEP, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	peps := make([]*model.PEP, 0)
	err := g.db.WithContext(ctx).Preload("Authors").Where("LOWER(title) LIKE ?", pattern).Find(&peps).Error
	if err != nil {
		return nil, err
	}

	return peps, nil
}

func (g *GormStore) CountPEPs(ctx context.Context) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).Model(&model.PEP{}).Count(&total).Error
	return total, err
}

// UpsertPEP inserts the row or overwrites every scalar column when the
// number already exists. Association rows are not touched here.
func (g *GormStore) UpsertPEP(ctx context.Context, pep *model.PEP) error {
	return g.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			UpdateAll: true,
		}).
		Create(pep).Error
}

func (g *GormStore) ReplaceAuthors(ctx context.Context, pep *model.PEP, authors []*model.Author) error {
	return g.db.WithContext(ctx).Model(pep).Association("Authors").Replace(authors)
}

func (g *GormStore) EnsureAuthor(ctx context.Context, name string) (*model.Author, error) {
	var author model.Author
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author = model.Author{Name: name}
	if err := g.db.WithContext(ctx).Create(&author).Error; err != nil {
		return nil, err
	}

	return &author, nil
}

func (g *GormStore) ListAuthors(ctx context.Context, number int) ([]*model.Author, error) {
	authors := make([]*model.Author, 0)
	err := g.db.WithContext(ctx).Model(&model.PEP{Number: number}).Association("Authors").Find(&authors)
	if err != nil {
		return nil, err
	}

	return authors, nil
}

// PruneAuthors removes the given author rows unless some PEP still links
// them. Ingestion calls this with the authors an association replace
// dropped, so a name that fell out of its last PEP does not linger.
func (g *GormStore) PruneAuthors(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	linked := g.db.Model(&model.PEPAuthor{}).Select("author_id").Where("author_id IN ?", ids)
	return g.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("id NOT IN (?)", linked).
		Delete(&model.Author{}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
