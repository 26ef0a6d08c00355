package usecase

import (
	"time"

	"dealscope-backend/dao"
	"dealscope-backend/model"
)

type GarageUsecase struct {
	repo *dao.GarageRepository
}

func NewGarageUsecase(repo *dao.GarageRepository) *GarageUsecase {
	return &GarageUsecase{repo: repo}
}

func (u *GarageUsecase) List(userID string) ([]model.SavedListing, error) {
	return u.repo.ListByUser(userID)
}

func (u *GarageUsecase) Save(userID string, listing model.Listing) (*model.SavedListing, error) {
	item := &model.SavedListing{
		ID:      newID(),
		UserID:  userID,
		Listing: listing,
		SavedAt: time.Now(),
	}
	if err := u.repo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (u *GarageUsecase) Delete(userID, listingID string) error {
	return u.repo.Delete(userID, listingID)
}
