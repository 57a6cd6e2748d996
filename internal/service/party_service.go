package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartyRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	IsActive    *bool  `json:"is_active"`
}

type VendorService struct {
	vendorRepo *repository.VendorRepository
}

func NewVendorService(vendorRepo *repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

func (s *VendorService) Create(ctx context.Context, req PartyRequest) (*entity.Vendor, error) {
	vendor := &entity.Vendor{
		ID:          uuid.New().String(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return vendor, nil
}

func (s *VendorService) Update(ctx context.Context, id string, req PartyRequest) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	vendor.Name = req.Name
	vendor.ContactName = req.ContactName
	vendor.Phone = req.Phone
	vendor.Email = req.Email
	vendor.Address = req.Address
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return vendor, nil
}

func (s *VendorService) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) List(ctx context.Context, params repository.PartyListParams) ([]entity.Vendor, int64, error) {
	return s.vendorRepo.List(ctx, params)
}

func (s *VendorService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.vendorRepo.SoftDelete(ctx, id)
}

type ManufacturerService struct {
	manufacturerRepo *repository.ManufacturerRepository
}

func NewManufacturerService(manufacturerRepo *repository.ManufacturerRepository) *ManufacturerService {
	return &ManufacturerService{manufacturerRepo: manufacturerRepo}
}

func (s *ManufacturerService) Create(ctx context.Context, req PartyRequest) (*entity.Manufacturer, error) {
	manufacturer := &entity.Manufacturer{
		ID:          uuid.New().String(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
	}
	if req.IsActive != nil {
		manufacturer.IsActive = *req.IsActive
	}
	if err := s.manufacturerRepo.Create(ctx, manufacturer); err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return manufacturer, nil
}

func (s *ManufacturerService) Update(ctx context.Context, id string, req PartyRequest) (*entity.Manufacturer, error) {
	manufacturer, err := s.manufacturerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("manufacturer %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	manufacturer.Name = req.Name
	manufacturer.ContactName = req.ContactName
	manufacturer.Phone = req.Phone
	manufacturer.Email = req.Email
	manufacturer.Address = req.Address
	if req.IsActive != nil {
		manufacturer.IsActive = *req.IsActive
	}
	if err := s.manufacturerRepo.Update(ctx, manufacturer); err != nil {
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}
	return manufacturer, nil
}

func (s *ManufacturerService) GetByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	manufacturer, err := s.manufacturerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("manufacturer %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return manufacturer, nil
}

func (s *ManufacturerService) List(ctx context.Context, params repository.PartyListParams) ([]entity.Manufacturer, int64, error) {
	return s.manufacturerRepo.List(ctx, params)
}

func (s *ManufacturerService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.manufacturerRepo.SoftDelete(ctx, id)
}
