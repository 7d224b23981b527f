package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carehub/internal/db"
	"carehub/internal/model"
)

// UserRepository persists users together with their profiles and session identities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindProfile(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	RoleOf(ctx context.Context, id uint) (model.Role, error)
	// HardenPassword replaces a plain credential with a bcrypt digest. Rows whose
	// credential is already hashed are left untouched.
	HardenPassword(ctx context.Context, id uint, hash string) error
	UpdatePhoneByName(ctx context.Context, givenName, surname, phone string) (int64, error)
	Delete(ctx context.Context, id uint) error
	CreateCaregiver(ctx context.Context, caregiver *model.Caregiver) error
	CreateMember(ctx context.Context, member *model.Member, address *model.Address) error
	FindIdentityByEmail(ctx context.Context, email string) (*model.Identity, error)
	SaveIdentity(ctx context.Context, identity *model.Identity) error
	ResyncIDSequence(ctx context.Context) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindProfile loads a user with whichever profile it owns, plus the member address.
func (r *userRepository) FindProfile(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Caregiver").
		Preload("Member").
		Preload("Member.Address").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("user_id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) RoleOf(ctx context.Context, id uint) (model.Role, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Caregiver{}).Where("caregiver_user_id = ?", id).Count(&n).Error; err != nil {
		return model.RoleNone, err
	}
	if n > 0 {
		return model.RoleCaregiver, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Where("member_user_id = ?", id).Count(&n).Error; err != nil {
		return model.RoleNone, err
	}
	if n > 0 {
		return model.RoleMember, nil
	}
	return model.RoleNone, nil
}

func (r *userRepository) HardenPassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ? AND password_scheme = ?", id, model.CredentialPlain).
		Updates(map[string]interface{}{
			"password":        hash,
			"password_scheme": model.CredentialBcrypt,
		}).Error
}

func (r *userRepository) UpdatePhoneByName(ctx context.Context, givenName, surname, phone string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("given_name = ? AND surname = ?", givenName, surname).
		Update("phone_number", phone)
	return res.RowsAffected, res.Error
}

// Delete removes the user; the schema cascades the delete to every dependent row.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) CreateCaregiver(ctx context.Context, caregiver *model.Caregiver) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(caregiver).Error
}

func (r *userRepository) CreateMember(ctx context.Context, member *model.Member, address *model.Address) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Omit(clause.Associations).Create(member).Error; err != nil {
		return err
	}
	address.MemberUserID = member.MemberUserID
	return tx.Create(address).Error
}

func (r *userRepository) FindIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// SaveIdentity inserts or updates an identity row. A new identity whose email already
// exists overwrites that row, so concurrent first logins converge on one identity.
func (r *userRepository) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	if identity.IdentityID != 0 {
		return r.db.WithContext(ctx).Save(identity).Error
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "first_name", "last_name", "password_hash", "synced_at"}),
		}).
		Create(identity).Error
	if err != nil {
		return err
	}
	// The id reported back after an upsert is driver dependent.
	stored, err := r.FindIdentityByEmail(ctx, identity.Email)
	if err != nil {
		return err
	}
	identity.IdentityID = stored.IdentityID
	return nil
}

func (r *userRepository) ResyncIDSequence(ctx context.Context) error {
	return db.ResyncSequence(r.db.WithContext(ctx), "users", "user_id")
}

// WithTransaction executes fn within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
