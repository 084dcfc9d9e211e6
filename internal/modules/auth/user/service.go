package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/pkg/sanitize"
	sessionpkg "github.com/formify/core/internal/pkg/session"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	failDelay time.Duration
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("UserService")
		}
	}
}

// WithFailureDelay sets how long a login for an unknown username stalls.
func WithFailureDelay(d time.Duration) Option {
	return func(s *Service) { s.failDelay = d }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, logger: zap.NewNop(), failDelay: 3 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(dto.Username)
	name := sanitize.Text(dto.Name)
	if name == "" {
		name = username
	}
	u := models.UserModel{
		Username: username,
		Name:     name,
		Email:    strings.TrimSpace(dto.Email),
		Password: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return nil, errUsernameTaken
		}
		return nil, err
	}
	s.logger.Info("user registered", zap.String("id", u.ID), zap.String("username", u.Username))
	return &u, nil
}

func (s *Service) Login(ctx context.Context, username, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(s.failDelay)
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed", zap.String("username", u.Username), zap.String("ip", ip))
		return "", nil, errInvalidCredentials
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error
	if err != nil {
		return "", nil, err
	}
	u.LastLoginTime = &now
	u.LastLoginIP = ip

	token, _, err := sessionpkg.Issue(s.db.WithContext(ctx), u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &u, err
}

func (s *Service) UpdateProfile(ctx context.Context, id string, dto *UpdateUserDTO) (*models.UserModel, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		u.Name = sanitize.Text(*dto.Name)
		updates["name"] = u.Name
	}
	if dto.Email != nil {
		u.Email = strings.TrimSpace(*dto.Email)
		updates["email"] = u.Email
	}
	if len(updates) == 0 {
		return u, nil
	}
	return u, s.db.WithContext(ctx).Model(u).Updates(updates).Error
}

func (s *Service) ChangePassword(ctx context.Context, id, oldPwd, newPwd string) error {
	var u models.UserModel
	if err := s.db.WithContext(ctx).Select("id, password").First(&u, "id = ?", id).Error; err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPwd)); err != nil {
		return errWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPwd)); err == nil {
		return errPasswordSameAsOld
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&u).Update("password", string(hash)).Error
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
