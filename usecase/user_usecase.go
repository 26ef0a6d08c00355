package usecase

import (
	"errors"
	"time"

	"dealscope-backend/auth"
	"dealscope-backend/dao"
	"dealscope-backend/model"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserUsecase struct {
	repo *dao.UserRepository
}

func NewUserUsecase(repo *dao.UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (u *UserUsecase) Register(email, password string) (*model.User, error) {
	existing, err := u.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := u.repo.Insert(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserUsecase) Login(email, password string) (*model.User, error) {
	user, err := u.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *UserUsecase) GetByID(id string) (*model.User, error) {
	return u.repo.GetByID(id)
}
