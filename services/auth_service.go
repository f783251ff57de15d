package services

import (
	"errors"
	"strings"
	"time"

	"eatmove/entity"
	"eatmove/repository"
	"eatmove/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleMember     = "member"
	RoleRestaurant = "restaurant"
	RoleCourier    = "courier"
)

// AuthService owns register/login for all three account tables. Passwords are
// always bcrypt: hashed at registration, verified with CompareHashAndPassword
// at login. No plaintext comparison path exists.
type AuthService struct {
	DB          *gorm.DB
	MemberRepo  *repository.MemberRepository
	RestRepo    *repository.RestaurantRepository
	CourierRepo *repository.CourierRepository

	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	memberRepo *repository.MemberRepository,
	restRepo *repository.RestaurantRepository,
	courierRepo *repository.CourierRepository,
	secret string,
	ttl time.Duration,
) *AuthService {
	return &AuthService{
		DB: db, MemberRepo: memberRepo, RestRepo: restRepo, CourierRepo: courierRepo,
		jwtSecret: secret, jwtTTL: ttl,
	}
}

type RegisterIn struct {
	Role     string `json:"role" binding:"required,oneof=member restaurant courier"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RegisterOut struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Role string `json:"role"`
}

func (s *AuthService) Register(in *RegisterIn) (*RegisterOut, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	var err error
	switch in.Role {
	case RoleMember:
		count, err = s.MemberRepo.CountByEmail(email)
	case RoleRestaurant:
		count, err = s.RestRepo.CountByEmail(email)
	case RoleCourier:
		count, err = s.CourierRepo.CountByEmail(email)
	default:
		return nil, errors.New("unknown role")
	}
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	var out RegisterOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		switch in.Role {
		case RoleMember:
			m := entity.Member{
				Name: name, Email: email, Password: string(hashed),
				Phone: phone, Address: in.Address,
			}
			if err := s.MemberRepo.Create(tx, &m); err != nil {
				return err
			}
			code := utils.AccountCode("M", m.ID)
			if err := s.MemberRepo.SetCode(tx, m.ID, code); err != nil {
				return err
			}
			out = RegisterOut{ID: m.ID, Code: code, Role: in.Role}
		case RoleRestaurant:
			r := entity.Restaurant{
				Name: name, Email: email, Password: string(hashed),
				Phone: phone, Address: in.Address,
			}
			if err := s.RestRepo.Create(tx, &r); err != nil {
				return err
			}
			code := utils.AccountCode("R", r.ID)
			if err := s.RestRepo.SetCode(tx, r.ID, code); err != nil {
				return err
			}
			out = RegisterOut{ID: r.ID, Code: code, Role: in.Role}
		case RoleCourier:
			co := entity.Courier{
				Name: name, Email: email, Password: string(hashed), Phone: phone,
			}
			if err := s.CourierRepo.Create(tx, &co); err != nil {
				return err
			}
			code := utils.AccountCode("D", co.ID)
			if err := s.CourierRepo.SetCode(tx, co.ID, code); err != nil {
				return err
			}
			out = RegisterOut{ID: co.ID, Code: code, Role: in.Role}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type LoginIn struct {
	Role           string    `json:"role" binding:"required,oneof=member restaurant courier"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	FaceDescriptor []float64 `json:"faceDescriptor"`
}

type LoginOut struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

func (s *AuthService) Login(in *LoginIn) (*LoginOut, error) {
	if len(in.FaceDescriptor) > 0 {
		return s.loginByFace(in.Role, in.FaceDescriptor)
	}
	if in.Email == "" || in.Password == "" {
		return nil, errors.New("email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	var (
		id     uint
		name   string
		code   string
		stored string
	)
	switch in.Role {
	case RoleMember:
		m, err := s.MemberRepo.FindByEmail(email)
		if err != nil {
			return nil, errors.New("invalid credentials")
		}
		id, name, code, stored = m.ID, m.Name, m.Code, m.Password
	case RoleRestaurant:
		r, err := s.RestRepo.FindByEmail(email)
		if err != nil {
			return nil, errors.New("invalid credentials")
		}
		id, name, code, stored = r.ID, r.Name, r.Code, r.Password
	case RoleCourier:
		co, err := s.CourierRepo.FindByEmail(email)
		if err != nil {
			return nil, errors.New("invalid credentials")
		}
		id, name, code, stored = co.ID, co.Name, co.Code, co.Password
	default:
		return nil, errors.New("unknown role")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(in.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.issue(id, in.Role, name, code)
}

// loginByFace scans stored descriptors for the nearest one under the match
// threshold. Linear over enrolled accounts, which is fine at this scale.
func (s *AuthService) loginByFace(role string, descriptor []float64) (*LoginOut, error) {
	type candidate struct {
		id   uint
		name string
		code string
		enc  string
	}
	var cands []candidate

	switch role {
	case RoleMember:
		members, err := s.MemberRepo.ListWithFaceDescriptor()
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			cands = append(cands, candidate{m.ID, m.Name, m.Code, m.FaceDescriptor})
		}
	case RoleCourier:
		couriers, err := s.CourierRepo.ListWithFaceDescriptor()
		if err != nil {
			return nil, err
		}
		for _, co := range couriers {
			cands = append(cands, candidate{co.ID, co.Name, co.Code, co.FaceDescriptor})
		}
	default:
		return nil, errors.New("face login not supported for this role")
	}

	best := candidate{}
	bestDist := utils.FaceMatchThreshold
	for _, c := range cands {
		stored, err := utils.DecodeDescriptor(c.enc)
		if err != nil {
			continue
		}
		if d := utils.DescriptorDistance(descriptor, stored); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best.id == 0 {
		return nil, errors.New("no matching face")
	}

	return s.issue(best.id, role, best.name, best.code)
}

func (s *AuthService) issue(id uint, role, name, code string) (*LoginOut, error) {
	token, err := utils.GenerateToken(id, role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, errors.New("cannot generate token")
	}
	return &LoginOut{Token: token, Role: role, ID: id, Name: name, Code: code}, nil
}

// ----- profile -----

func (s *AuthService) MemberProfile(id uint) (*entity.Member, error) {
	return s.MemberRepo.FindByID(id)
}

type UpdateProfileIn struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`

	// nil leaves the face alone, empty slice clears it
	FaceDescriptor *[]float64 `json:"faceDescriptor"`
}

func (s *AuthService) UpdateMemberProfile(id uint, in *UpdateProfileIn) (*entity.Member, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.New("hash password failed")
		}
		updates["password"] = string(hashed)
	}
	if in.FaceDescriptor != nil {
		if len(*in.FaceDescriptor) == 0 {
			updates["face_descriptor"] = ""
		} else {
			enc, err := utils.EncodeDescriptor(*in.FaceDescriptor)
			if err != nil {
				return nil, err
			}
			updates["face_descriptor"] = enc
		}
	}

	if len(updates) > 0 {
		if err := s.MemberRepo.Update(id, updates); err != nil {
			return nil, err
		}
	}
	return s.MemberRepo.FindByID(id)
}
