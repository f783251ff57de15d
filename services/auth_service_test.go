package services

import (
	"testing"
	"time"

	"eatmove/entity"
	"eatmove/repository"
	"eatmove/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthSvc(db *gorm.DB) *AuthService {
	return NewAuthService(db,
		repository.NewMemberRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewCourierRepository(db),
		"test-secret", time.Hour)
}

func TestRegisterAssignsSequentialCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	out, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "M000001", out.Code)

	out, err = svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Bob", Email: "bob@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "M000002", out.Code)

	out, err = svc.Register(&RegisterIn{
		Role: RoleRestaurant, Name: "Kitchen", Email: "kitchen@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "R000001", out.Code)

	out, err = svc.Register(&RegisterIn{
		Role: RoleCourier, Name: "Rider", Email: "rider@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "D000001", out.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	_, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice Again", Email: "Alice@Example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	out, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	var m entity.Member
	require.NoError(t, db.First(&m, out.ID).Error)
	assert.NotEqual(t, "secret1", m.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(m.Password), []byte("secret1")))
}

func TestLoginPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	_, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	out, err := svc.Login(&LoginIn{Role: RoleMember, Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, RoleMember, out.Role)
	assert.Equal(t, "M000001", out.Code)

	_, err = svc.Login(&LoginIn{Role: RoleMember, Email: "alice@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(&LoginIn{Role: RoleMember, Email: "nobody@example.com", Password: "secret1"})
	assert.Error(t, err)
}

func TestLoginByFace(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	out, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	enrolled := []float64{0.1, 0.2, 0.3, 0.4}
	enc, err := utils.EncodeDescriptor(enrolled)
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.Member{}).
		Where("id = ?", out.ID).Update("face_descriptor", enc).Error)

	// a close capture matches
	res, err := svc.Login(&LoginIn{
		Role:           RoleMember,
		FaceDescriptor: []float64{0.11, 0.21, 0.29, 0.41},
	})
	require.NoError(t, err)
	assert.Equal(t, out.ID, res.ID)

	// a distant capture does not
	_, err = svc.Login(&LoginIn{
		Role:           RoleMember,
		FaceDescriptor: []float64{0.9, 0.9, 0.9, 0.9},
	})
	assert.Error(t, err)

	// restaurants have no face login
	_, err = svc.Login(&LoginIn{
		Role:           RoleRestaurant,
		FaceDescriptor: enrolled,
	})
	assert.Error(t, err)
}

func TestUpdateMemberProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthSvc(db)

	out, err := svc.Register(&RegisterIn{
		Role: RoleMember, Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	name := "Alice B"
	phone := "0812345678"
	desc := []float64{0.1, 0.2}
	m, err := svc.UpdateMemberProfile(out.ID, &UpdateProfileIn{
		Name: &name, Phone: &phone, FaceDescriptor: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", m.Name)
	assert.Equal(t, "0812345678", m.Phone)
	assert.NotEmpty(t, m.FaceDescriptor)

	// an empty descriptor clears enrolment
	empty := []float64{}
	m, err = svc.UpdateMemberProfile(out.ID, &UpdateProfileIn{FaceDescriptor: &empty})
	require.NoError(t, err)
	assert.Empty(t, m.FaceDescriptor)
}
