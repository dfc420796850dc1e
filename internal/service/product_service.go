package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
	"go-production-tracker/internal/schedule"
	"go-production-tracker/internal/ws"
	"go-production-tracker/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetProducts(requester *model.User) ([]model.Product, error)
	GetActiveProducts(requester *model.User) ([]model.ProductResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	clock       schedule.Clock
}

func NewProductService(pRepo repository.ProductRepository, hub *ws.Hub, clock schedule.Clock) ProductService {
	if clock == nil {
		clock = schedule.Now
	}
	return &productService{
		productRepo: pRepo,
		wsHub:       hub,
		clock:       clock,
	}
}

func (s *productService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// New products start with the full month's stock unless told otherwise.
	if req.RemainingStock == 0 {
		req.RemainingStock = req.MonthlyTarget
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.broadcastProduct("product_created", req, userID)

	return nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Team != "" && !model.ValidTeam(req.Team) {
		return nil, errors.New("team must be VIDEO or PORTAL")
	}

	existing.Name = req.Name
	existing.Brand = req.Brand
	if req.Team != "" {
		existing.Team = req.Team
	}
	existing.MonthlyTarget = req.MonthlyTarget
	existing.RemainingStock = req.RemainingStock
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.broadcastProduct("product_updated", existing, userID)

	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id, userID)
}

// GetProducts lists all products for super admins, otherwise only the
// requester's team.
func (s *productService) GetProducts(requester *model.User) ([]model.Product, error) {
	if requester.IsSuperAdmin() {
		return s.productRepo.FindAll()
	}
	return s.productRepo.FindAllByTeam(requester.Team)
}

// GetActiveProducts returns the daily-sheet product list with today's
// suggested daily target attached.
func (s *productService) GetActiveProducts(requester *model.User) ([]model.ProductResponse, error) {
	var team *model.Team
	if !requester.IsSuperAdmin() {
		team = &requester.Team
	}

	products, err := s.productRepo.FindActive(team)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	responses := make([]model.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = model.ProductResponse{
			Product:     p,
			DailyTarget: schedule.DailyTarget(p.RemainingStock, p.StartDate, p.EndDate, now),
		}
	}
	return responses, nil
}

func (s *productService) broadcastProduct(action string, product *model.Product, userID string) {
	payload := map[string]interface{}{
		"type":   "production_update",
		"action": action,
		"product": map[string]interface{}{
			"id":              product.ID,
			"name":            product.Name,
			"team":            product.Team,
			"monthly_target":  product.MonthlyTarget,
			"remaining_stock": product.RemainingStock,
			"is_active":       product.IsActive,
		},
		"user_id": userID,
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg
}
