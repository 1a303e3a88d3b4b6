package payment

import (
	"context"
	"errors"

	"github.com/amirasaad/loantrack/pkg/domain"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/pkg/repository/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a payment repository backed by the given session.
func New(db *gorm.DB) payment.Repository {
	return &repository{db: db}
}

// ownedByUser scopes a payments query to loans belonging to userID. The join
// does not filter on the loan's deleted_at: payments of a soft-deleted loan
// stay visible to their owner.
func (r *repository) ownedByUser(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&Payment{}).
		Joins("JOIN loans ON loans.id = payments.loan_id").
		Where("loans.user_id = ?", userID)
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.PaymentCreate,
) error {
	model := &Payment{
		ID:          create.ID,
		LoanID:      create.LoanID,
		Amount:      create.Amount,
		PaymentDate: create.PaymentDate,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *repository) GetForUser(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.PaymentRead, error) {
	var model Payment
	if err := r.ownedByUser(ctx, userID).
		Where("payments.id = ?", id).
		First(&model).Error; err != nil {
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
) ([]*dto.PaymentRead, error) {
	var models []Payment
	if err := r.ownedByUser(ctx, userID).
		Order("payments.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*dto.PaymentRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) ListByLoan(
	ctx context.Context,
	loanID uuid.UUID,
) ([]*dto.PaymentRead, error) {
	var models []Payment
	if err := r.db.WithContext(
		ctx,
	).Where("loan_id = ?", loanID).
		Order("payment_date ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*dto.PaymentRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	pu *dto.PaymentUpdate,
) error {
	if pu.Amount == nil {
		return nil
	}

	// Subquery instead of a join: UPDATE ... JOIN is not portable and GORM
	// applies the soft-delete scope to the outer table only.
	res := r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", id).
		Where("loan_id IN (?)",
			r.db.Table("loans").Select("id").Where("user_id = ?", userID)).
		Update("amount", *pu.Amount)
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
		Where("id = ?", id).
		Where("loan_id IN (?)",
			r.db.Table("loans").Select("id").Where("user_id = ?", userID)).
		Delete(&Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapModelToDTO(model *Payment) *dto.PaymentRead {
	return &dto.PaymentRead{
		ID:          model.ID,
		LoanID:      model.LoanID,
		Amount:      model.Amount,
		PaymentDate: model.PaymentDate,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
