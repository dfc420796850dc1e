package repository

import (
	"go-production-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindAllByTeam(team model.Team) ([]model.Product, error)
	FindActive(team *model.Team) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error

	// LockByID loads the product inside tx with a row lock so stock
	// deductions on the same product serialize.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateRemainingStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllByTeam(team model.Team) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("team = ?", team).Order("created_at DESC").Find(&products).Error
	return products, err
}

// FindActive returns active products sorted by name, optionally scoped to
// a single team (nil means all teams, for super admins).
func (r *productRepo) FindActive(team *model.Team) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Where("is_active = ?", true)
	if team != nil {
		query = query.Where("team = ?", *team)
	}
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateRemainingStock runs against tx so the write stays inside the
// caller's transaction.
func (r *productRepo) UpdateRemainingStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"remaining_stock": newStock,
			"updated_by":      updatedBy,
		}).Error
}
