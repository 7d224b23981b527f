package repository

import (
	"context"

	"gorm.io/gorm"

	"carehub/internal/model"
)

// MemberRepository covers member lookups and street-wide removal.
type MemberRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	DeleteOnStreet(ctx context.Context, street string) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository builds a GORM-backed member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Where("member_user_id = ?", id).Count(&n).Error
	return n > 0, err
}

// DeleteOnStreet removes the member profiles whose address is on street. Their address, jobs,
// applications and appointments go with them; the user rows stay.
func (r *memberRepository) DeleteOnStreet(ctx context.Context, street string) (int64, error) {
	sub := r.db.Model(&model.Address{}).Select("member_user_id").Where("street = ?", street)
	res := r.db.WithContext(ctx).Where("member_user_id IN (?)", sub).Delete(&model.Member{})
	return res.RowsAffected, res.Error
}
