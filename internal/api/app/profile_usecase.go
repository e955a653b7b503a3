package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
	"geoprofiles/internal/api/ports/repositories"
	svc "geoprofiles/internal/api/ports/services"
	"geoprofiles/pkg/logger"
)

const (
	methodPatch          = "Patch"
	methodChangePassword = "ChangePassword"
	methodLookup         = "Lookup"

	msgPatchField        = "profile field committed"
	msgPatchDenied       = "profile change rejected"
	msgPasswordChanged   = "password changed"
	msgPasswordDenied    = "password change rejected"
	msgLookupDenied      = "profile lookup rejected"
	msgErrUpdateProfile  = "failed to update profile"
	msgErrUpdatePassword = "failed to update password"

	errCtxPatchingField    = "patching %s"
	errCtxUpdatingPassword = "updating password"
	errCtxLookingUp        = "looking up profile"
)

// ProfileUseCaseImpl реализует изменение профиля, смену пароля и просмотр чужих профилей.
type ProfileUseCaseImpl struct {
	userRepo    repositories.UserRepository
	countryRepo repositories.CountryRepository
	passwordSvc svc.PasswordService
	now         Clock
}

// NewProfileUseCase создает новый экземпляр сервиса профилей.
func NewProfileUseCase(
	userRepo repositories.UserRepository,
	countryRepo repositories.CountryRepository,
	passwordSvc svc.PasswordService,
	now Clock,
) *ProfileUseCaseImpl {
	return &ProfileUseCaseImpl{
		userRepo:    userRepo,
		countryRepo: countryRepo,
		passwordSvc: passwordSvc,
		now:         now.orDefault(),
	}
}

// patchStep проверяет одно поле и применяет его к копии пользователя.
// applied = false означает, что поле не передано и сохранять нечего.
type patchStep struct {
	field string
	apply func(ctx context.Context, u *entities.User) (applied bool, err error)
}

// Patch применяет переданные поля по очереди: login, email, countryCode, isPublic, phone, image.
// Каждое поле сохраняется сразу после проверки, поэтому при ошибке уже сохраненные поля остаются.
func (p *ProfileUseCaseImpl) Patch(ctx context.Context, user *entities.User, patch entities.ProfilePatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodPatch), zap.Int64("userID", user.ID))

	current := user
	for _, step := range p.patchSteps(patch) {
		next := *current
		applied, err := step.apply(ctx, &next)
		if err != nil {
			log.Debug(ctx, msgPatchDenied, zap.String("field", step.field), zap.Error(err))
			return nil, fmt.Errorf(errCtxPatchingField+": %w", step.field, err)
		}
		if !applied {
			continue
		}

		updated, err := p.userRepo.Update(ctx, &next)
		if err != nil {
			reason := translate(err, map[error]*entities.ReasonError{
				repositories.ErrLoginTaken:     entities.ErrNotUniqLogin,
				repositories.ErrEmailTaken:     entities.ErrNotUniqEmail,
				repositories.ErrPhoneTaken:     entities.ErrNotUniqPhoneNumber,
				repositories.ErrUnknownCountry: entities.ErrNoSuchCountry,
				repositories.ErrRecordNotFound: entities.ErrUserNotFound,
			})
			if reason != nil {
				return nil, fmt.Errorf(errCtxPatchingField+": %w", step.field, reason)
			}
			log.Error(ctx, msgErrUpdateProfile, zap.String("field", step.field), zap.Error(err))
			return nil, fmt.Errorf(errCtxPatchingField+": %w", step.field, err)
		}
		log.Debug(ctx, msgPatchField, zap.String("field", step.field))
		current = updated
	}

	return current, nil
}

func (p *ProfileUseCaseImpl) patchSteps(patch entities.ProfilePatch) []patchStep {
	return []patchStep{
		{field: "login", apply: func(ctx context.Context, u *entities.User) (bool, error) {
			if patch.Login == nil || *patch.Login == "" {
				return false, nil
			}
			if tooLong(*patch.Login, entities.MaxLoginLength) {
				return false, entities.ErrTooLongLogin
			}
			if err := p.ensureFree(ctx, p.userRepo.FindByLogin, *patch.Login, u.ID, entities.ErrNotUniqLogin); err != nil {
				return false, err
			}
			u.Login = *patch.Login
			return true, nil
		}},
		{field: "email", apply: func(ctx context.Context, u *entities.User) (bool, error) {
			if patch.Email == nil || *patch.Email == "" {
				return false, nil
			}
			if tooLong(*patch.Email, entities.MaxEmailLength) {
				return false, entities.ErrTooLongEmail
			}
			if err := p.ensureFree(ctx, p.userRepo.FindByEmail, *patch.Email, u.ID, entities.ErrNotUniqEmail); err != nil {
				return false, err
			}
			u.Email = *patch.Email
			return true, nil
		}},
		{field: "countryCode", apply: func(ctx context.Context, u *entities.User) (bool, error) {
			if patch.CountryCode == nil {
				return false, nil
			}
			if _, err := p.countryRepo.FindByAlpha2(ctx, *patch.CountryCode); err != nil {
				if errors.Is(err, repositories.ErrRecordNotFound) {
					return false, entities.ErrNoSuchCountry
				}
				return false, err
			}
			u.CountryCode = *patch.CountryCode
			return true, nil
		}},
		{field: "isPublic", apply: func(_ context.Context, u *entities.User) (bool, error) {
			if patch.IsPublic == nil {
				return false, nil
			}
			u.IsPublic = *patch.IsPublic
			return true, nil
		}},
		{field: "phone", apply: func(ctx context.Context, u *entities.User) (bool, error) {
			if patch.Phone == nil || *patch.Phone == "" {
				return false, nil
			}
			if !entities.HasPhonePrefix(*patch.Phone) {
				return false, entities.ErrWrongPhoneFormat
			}
			if tooLong(*patch.Phone, entities.MaxPhoneLength) {
				return false, entities.ErrTooLongPhone
			}
			if err := p.ensureFree(ctx, p.userRepo.FindByPhone, *patch.Phone, u.ID, entities.ErrNotUniqPhoneNumber); err != nil {
				return false, err
			}
			u.Phone = *patch.Phone
			return true, nil
		}},
		{field: "image", apply: func(_ context.Context, u *entities.User) (bool, error) {
			if patch.Image == nil || *patch.Image == "" {
				return false, nil
			}
			if tooLong(*patch.Image, entities.MaxImageLength) {
				return false, entities.ErrTooBigImage
			}
			u.Image = *patch.Image
			return true, nil
		}},
	}
}

func (p *ProfileUseCaseImpl) ensureFree(ctx context.Context, find finder, value string, selfID int64, reason *entities.ReasonError) error {
	taken, err := takenByOther(ctx, find, value, selfID)
	if err != nil {
		return err
	}
	if taken {
		return reason
	}
	return nil
}

// ChangePassword меняет пароль. Новый момент смены пароля делает недействительными все ранее выданные токены.
func (p *ProfileUseCaseImpl) ChangePassword(ctx context.Context, user *entities.User, oldPassword, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.Int64("userID", user.ID))

	ok, err := p.passwordSvc.Verify(ctx, oldPassword, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgPasswordDenied, zap.Error(entities.ErrOldPassword))
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, entities.ErrOldPassword)
	}

	if err := services.ValidatePassword(newPassword); err != nil {
		log.Debug(ctx, msgPasswordDenied, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	hash, err := p.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := p.userRepo.UpdatePassword(ctx, user.ID, hash, p.now().UnixMilli()); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("%s: %w", errCtxUpdatingPassword, entities.ErrUserNotFound)
		}
		log.Error(ctx, msgErrUpdatePassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}

// Lookup возвращает профиль по логину. Свой профиль доступен всегда, чужой только если он публичный.
func (p *ProfileUseCaseImpl) Lookup(ctx context.Context, requester *entities.User, login string) (*entities.User, error) {
	if requester.Login == login {
		return requester, nil
	}

	log := logger.Log(ctx).With(zap.String("method", methodLookup), zap.String("login", login))

	target, err := p.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			log.Debug(ctx, msgLookupDenied, zap.Error(entities.ErrNoUserWithLogin))
			return nil, fmt.Errorf("%s: %w", errCtxLookingUp, entities.ErrNoUserWithLogin)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLookingUp, err)
	}
	if !target.IsPublic {
		log.Debug(ctx, msgLookupDenied, zap.Error(entities.ErrNotPublicProfile))
		return nil, fmt.Errorf("%s: %w", errCtxLookingUp, entities.ErrNotPublicProfile)
	}

	return target, nil
}
