package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/domain/services"
	"geoprofiles/internal/api/ports/repositories"
	svc "geoprofiles/internal/api/ports/services"
	"geoprofiles/pkg/logger"
)

const (
	methodRegister     = "Register"
	methodSignIn       = "SignIn"
	methodAuthenticate = "Authenticate"

	msgStartRegistration  = "starting user registration"
	msgRegistrationDenied = "registration rejected"
	msgUserRegistered     = "user registered successfully"
	msgSignInAttempt      = "sign-in attempt"
	msgSignInDenied       = "sign-in rejected"
	msgUserSignedIn       = "user signed in successfully"
	msgTokenRejected      = "token rejected"

	msgErrLookupCountry   = "failed to look up country"
	msgErrCheckUniqueness = "failed to check uniqueness"
	msgErrHashPassword    = "failed to hash password"
	msgErrCreateUser      = "failed to create user"
	msgErrFindingUser     = "error finding user"
	msgErrVerifyPassword  = "error verifying password"
	msgErrIssueToken      = "failed to issue token"

	errCtxValidatingInput    = "validating registration"
	errCtxCheckingCountry    = "checking country"
	errCtxCheckingEmail      = "checking email uniqueness"
	errCtxCheckingLogin      = "checking login uniqueness"
	errCtxCheckingPhone      = "checking phone uniqueness"
	errCtxValidatingPassword = "validating password"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxIssuingToken       = "issuing token"
	errCtxDecodingToken      = "decoding token"
	errCtxResolvingUser      = "resolving token owner"
	errCtxCheckingToken      = "checking token"
)

// AuthUseCaseImpl реализует регистрацию, вход и проверку токена.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	countryRepo repositories.CountryRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	tokenTTL    time.Duration
	now         Clock
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	countryRepo repositories.CountryRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	tokenTTL time.Duration,
	now Clock,
) *AuthUseCaseImpl {
	if tokenTTL <= 0 {
		tokenTTL = services.DefaultTokenTTL
	}
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		countryRepo: countryRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		tokenTTL:    tokenTTL,
		now:         now.orDefault(),
	}
}

// Register создает учетную запись. Проверки идут в фиксированном порядке, первая ошибка прерывает регистрацию.
func (a *AuthUseCaseImpl) Register(ctx context.Context, reg entities.Registration) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("login", reg.Login))
	log.Debug(ctx, msgStartRegistration)

	if reg.Login == "" || reg.Email == "" || reg.Password == "" || reg.CountryCode == "" {
		log.Debug(ctx, msgRegistrationDenied, zap.Error(entities.ErrMissingData))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, entities.ErrMissingData)
	}

	if _, err := a.countryRepo.FindByAlpha2(ctx, reg.CountryCode); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			log.Debug(ctx, msgRegistrationDenied, zap.Error(entities.ErrNoSuchCountry))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingCountry, entities.ErrNoSuchCountry)
		}
		log.Error(ctx, msgErrLookupCountry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingCountry, err)
	}

	if err := validateRegistrationFormat(reg); err != nil {
		log.Debug(ctx, msgRegistrationDenied, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	uniqueness := []struct {
		find   finder
		value  string
		reason *entities.ReasonError
		errCtx string
	}{
		{a.userRepo.FindByEmail, reg.Email, entities.ErrNotUniqEmail, errCtxCheckingEmail},
		{a.userRepo.FindByLogin, reg.Login, entities.ErrNotUniqLogin, errCtxCheckingLogin},
		{a.userRepo.FindByPhone, reg.Phone, entities.ErrNotUniqPhone, errCtxCheckingPhone},
	}
	for _, check := range uniqueness {
		taken, err := takenByOther(ctx, check.find, check.value, 0)
		if err != nil {
			log.Error(ctx, msgErrCheckUniqueness, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", check.errCtx, err)
		}
		if taken {
			log.Debug(ctx, msgRegistrationDenied, zap.Error(check.reason))
			return nil, fmt.Errorf("%s: %w", check.errCtx, check.reason)
		}
	}

	if err := services.ValidatePassword(reg.Password); err != nil {
		log.Debug(ctx, msgRegistrationDenied, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	hash, err := a.passwordSvc.Hash(ctx, reg.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Login:           reg.Login,
		Email:           reg.Email,
		PasswordHash:    hash,
		CountryCode:     reg.CountryCode,
		IsPublic:        reg.IsPublic,
		Phone:           reg.Phone,
		Image:           reg.Image,
		LastPasswordSet: a.now().UnixMilli(),
	})
	if err != nil {
		// Параллельная регистрация могла занять значение после проверок выше.
		reason := translate(err, map[error]*entities.ReasonError{
			repositories.ErrEmailTaken:     entities.ErrNotUniqEmail,
			repositories.ErrLoginTaken:     entities.ErrNotUniqLogin,
			repositories.ErrPhoneTaken:     entities.ErrNotUniqPhone,
			repositories.ErrUnknownCountry: entities.ErrNoSuchCountry,
		})
		if reason != nil {
			log.Debug(ctx, msgRegistrationDenied, zap.Error(reason))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, reason)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("userID", created.ID))
	return created, nil
}

// validateRegistrationFormat проверяет телефон и длины полей.
func validateRegistrationFormat(reg entities.Registration) error {
	switch {
	case !entities.HasPhonePrefix(reg.Phone):
		return entities.ErrBadPhoneNumber
	case tooLong(reg.Image, entities.MaxImageLength):
		return entities.ErrTooLongImage
	case tooLong(reg.Login, entities.MaxLoginLength):
		return entities.ErrTooLongLogin
	case tooLong(reg.Email, entities.MaxEmailLength):
		return entities.ErrTooLongEmail
	case tooLong(reg.Phone, entities.MaxPhoneLength):
		return entities.ErrTooLongPhone
	}
	return nil
}

// SignIn проверяет логин и пароль и выпускает токен.
func (a *AuthUseCaseImpl) SignIn(ctx context.Context, login, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignIn), zap.String("login", login))
	log.Debug(ctx, msgSignInAttempt)

	user, err := a.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			log.Debug(ctx, msgSignInDenied, zap.Error(entities.ErrNoSuchUser))
			return "", fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrNoSuchUser)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgSignInDenied, zap.Error(entities.ErrWrongPassword))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, entities.ErrWrongPassword)
	}

	token, err := a.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgUserSignedIn, zap.Int64("userID", user.ID))
	return token, nil
}

// Authenticate проверяет токен по текущему состоянию учетной записи и возвращает владельца.
// Порядок проверок: подпись и поля, существование пользователя, возраст, смена пароля.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	claims, err := a.tokenSvc.Parse(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxDecodingToken, err)
	}

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			log.Debug(ctx, msgTokenRejected, zap.Int64("userID", claims.UserID), zap.Error(entities.ErrUserNotFound))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, entities.ErrUserNotFound)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}

	if claims.Expired(a.now(), a.tokenTTL) {
		log.Debug(ctx, msgTokenRejected, zap.Int64("userID", user.ID), zap.Error(entities.ErrTokenExpired))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingToken, entities.ErrTokenExpired)
	}
	if claims.Stale(user.LastPasswordSet) {
		log.Debug(ctx, msgTokenRejected, zap.Int64("userID", user.ID), zap.Error(entities.ErrStaleToken))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingToken, entities.ErrStaleToken)
	}

	return user, nil
}
