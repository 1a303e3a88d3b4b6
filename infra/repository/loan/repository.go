package loan

import (
	"context"
	"errors"

	"github.com/amirasaad/loantrack/pkg/domain"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository/loan"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a loan repository backed by the given session.
func New(db *gorm.DB) loan.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.LoanCreate,
) error {
	model := &Loan{
		ID:           create.ID,
		UserID:       create.UserID,
		NominalValue: create.NominalValue,
		InterestRate: create.InterestRate,
		IPAddress:    create.IPAddress,
		RequestDate:  create.RequestDate,
		Bank:         create.Bank,
		Client:       create.Client,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.LoanRead, error) {
	var model Loan
	if err := r.db.WithContext(
		ctx,
	).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) GetForUser(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.LoanRead, error) {
	var model Loan
	if err := r.db.WithContext(
		ctx,
	).Where("user_id = ?", userID).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) ([]*dto.LoanRead, error) {
	var models []Loan
	if err := r.db.WithContext(
		ctx,
	).Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*dto.LoanRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	lu *dto.LoanUpdate,
) error {
	updates := make(map[string]interface{})

	if lu.NominalValue != nil {
		updates["nominal_value"] = *lu.NominalValue
	}
	if lu.InterestRate != nil {
		updates["interest_rate"] = *lu.InterestRate
	}
	if lu.Bank != nil {
		updates["bank"] = *lu.Bank
	}
	if lu.Client != nil {
		updates["client"] = *lu.Client
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&Loan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&Loan{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) Restore(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	// Unscoped so the soft-deleted row is visible to the update.
	res := r.db.WithContext(ctx).Unscoped().Model(&Loan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapModelToDTO(model *Loan) *dto.LoanRead {
	return &dto.LoanRead{
		ID:           model.ID,
		UserID:       model.UserID,
		NominalValue: model.NominalValue,
		InterestRate: model.InterestRate,
		IPAddress:    model.IPAddress,
		RequestDate:  model.RequestDate,
		Bank:         model.Bank,
		Client:       model.Client,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
