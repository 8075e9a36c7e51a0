package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

var validate = validator.New()

type ProfileRequest struct {
	WorkStudy string  `json:"work_study" validate:"required"`
	Hobbies   string  `json:"hobbies" validate:"required"`
	Sports    string  `json:"sports" validate:"required"`
	Location  string  `json:"location" validate:"required"`
	Age       int     `json:"age" validate:"omitempty,gte=1,lte=120"`
	WeightKg  float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	HeightCm  float64 `json:"height_cm" validate:"omitempty,gt=0"`
	Reading   string  `json:"reading"`
	Extras    string  `json:"extras"`
}

func ValidateProfileRequest(req *ProfileRequest) error {
	return validate.Struct(req)
}

func SaveProfile(ctx context.Context, profileRepo storage.ProfileRepository, user *internal.User, req *ProfileRequest) (*internal.Profile, error) {
	profile := &internal.Profile{
		UserID:    user.ID,
		WorkStudy: req.WorkStudy,
		Hobbies:   req.Hobbies,
		Sports:    req.Sports,
		Location:  req.Location,
		Age:       req.Age,
		WeightKg:  req.WeightKg,
		HeightCm:  req.HeightCm,
		Reading:   req.Reading,
		Extras:    req.Extras,
		UpdatedAt: time.Now(),
	}
	if err := profileRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
