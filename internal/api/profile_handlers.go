package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/service"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

func PutProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateProfileRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Profile validation failed")
			return
		}

		profile, err := service.SaveProfile(c.Request.Context(), app.Profiles(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save profile")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, err := app.Profiles().GetProfile(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No profile for user")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch profile")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

// requireProfile loads the caller's profile, responding 400 when it does
// not exist. Generation endpoints cannot run without one.
func requireProfile(c *gin.Context, app App, user *internal.User) (*internal.Profile, bool) {
	profile, err := app.Profiles().GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			HandleError(c, app.Logger(), err, 400, "A profile is required before generating plans")
			return nil, false
		}
		HandleError(c, app.Logger(), err, 500, "Failed to fetch profile")
		return nil, false
	}
	return profile, true
}

// requestedDate resolves an optional "YYYY-MM-DD" date, defaulting to
// today in the app's default timezone.
func requestedDate(app App, date string) (string, error) {
	if date == "" {
		loc, err := time.LoadLocation(app.DefaultTimezone())
		if err != nil {
			loc = time.UTC
		}
		return time.Now().In(loc).Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", err
	}
	return date, nil
}
