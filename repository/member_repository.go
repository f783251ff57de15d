package repository

import (
	"eatmove/entity"

	"gorm.io/gorm"
)

type MemberRepository struct{ DB *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{DB: db} }

func (r *MemberRepository) Create(tx *gorm.DB, m *entity.Member) error {
	return tx.Create(m).Error
}

func (r *MemberRepository) SetCode(tx *gorm.DB, id uint, code string) error {
	return tx.Model(&entity.Member{}).Where("id = ?", id).Update("code", code).Error
}

func (r *MemberRepository) FindByID(id uint) (*entity.Member, error) {
	var m entity.Member
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) FindByEmail(email string) (*entity.Member, error) {
	var m entity.Member
	if err := r.DB.Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Member{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *MemberRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Member{}).Where("id = ?", id).Updates(updates).Error
}

// ListWithFaceDescriptor feeds the face-login nearest-neighbour scan.
func (r *MemberRepository) ListWithFaceDescriptor() ([]entity.Member, error) {
	var out []entity.Member
	err := r.DB.Where("face_descriptor <> ''").Find(&out).Error
	return out, err
}
