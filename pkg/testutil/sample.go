package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/internal/repository"
)

// SampleUser creates an approved user with randomized fields. Non-zero
// fields of init overwrite the sample before insert.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          uuid.NewString() + "@example.com",
		Name:           uuid.NewString(),
		HashedPassword: uuid.NewString(),
		Role:           entity.RoleUser,
		Status:         entity.UserStatusApproved,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleGuild(ctx context.Context, init *entity.Guild) (entity.Guild, error) {
	guildRepo := repository.NewGuildRepository()

	sample := &entity.Guild{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      uuid.NewString(),
		CreatedBy: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := guildRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleWritingSession(ctx context.Context, init *entity.WritingSession) (entity.WritingSession, error) {
	sessionRepo := repository.NewWritingSessionRepository()

	sample := &entity.WritingSession{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    uuid.NewString(),
		WordCount: 100,
		Duration:  30,
		StartedAt: time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := sessionRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleCompetition(ctx context.Context, init *entity.Competition) (entity.Competition, error) {
	competitionRepo := repository.NewCompetitionRepository()

	sample := &entity.Competition{
		Base:      entity.Base{ID: uuid.NewString()},
		CreatedBy: uuid.NewString(),
		Title:     uuid.NewString(),
		Type:      entity.CompetitionWordCount,
		Target:    1000,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		Status:    entity.CompetitionStatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := competitionRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
