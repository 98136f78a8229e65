package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/config"
	"tasktrack/internal/dto"
	"tasktrack/internal/factory"
	"tasktrack/internal/model"
	modelToken "tasktrack/internal/model/token"
	"tasktrack/internal/repository"
	"tasktrack/pkg/constant"
	"tasktrack/pkg/gomail"
	"tasktrack/pkg/util/aescrypt"
	"tasktrack/pkg/util/encoding"
	"tasktrack/pkg/util/general"
	"tasktrack/pkg/util/response"
	"tasktrack/pkg/util/trxmanager"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx *abstraction.Context, payload *dto.AuthLoginRequest) (map[string]interface{}, error)
	Logout(ctx *abstraction.Context) (map[string]interface{}, error)
	RefreshToken(ctx *abstraction.Context) (map[string]interface{}, error)
	SendEmailForgotPassword(ctx *abstraction.Context, payload *dto.AuthSendEmailForgotPasswordRequest) (map[string]interface{}, error)
	ValidationResetPassword(ctx *abstraction.Context, payload *dto.AuthValidationResetPasswordRequest) (string, error)
}

type service struct {
	UserRepository repository.User

	DB      *gorm.DB
	DbRedis *redis.Client
}

func NewService(f *factory.Factory) Service {
	return &service{
		UserRepository: f.UserRepository,

		DB:      f.Db,
		DbRedis: f.DbRedis,
	}
}

func (s *service) encryptTokenClaims(v int) (encryptedString string, err error) {
	encryptedString, err = aescrypt.EncryptAES(fmt.Sprint(v), config.Get().JWT.SecretKey)
	return
}

func (s *service) buildToken(data *model.UserEntityModel, uuidLogin string) (string, error) {
	encryptedUserID, err := s.encryptTokenClaims(data.ID)
	if err != nil {
		return "", err
	}
	encryptedUserRoleID, err := s.encryptTokenClaims(data.RoleId)
	if err != nil {
		return "", err
	}
	encryptedUserEntityID, err := s.encryptTokenClaims(data.EntityId)
	if err != nil {
		return "", err
	}

	tokenClaims := &modelToken.TokenClaims{
		ID:        encryptedUserID,
		RoleID:    encryptedUserRoleID,
		EntityID:  encryptedUserEntityID,
		Email:     encoding.Encode(data.Email),
		UuidLogin: encoding.Encode(uuidLogin),
		Exp:       time.Now().Add(time.Duration(24 * time.Hour)).Unix(),
	}
	authToken := modelToken.NewAuthToken(tokenClaims)
	return authToken.Token()
}

func (s *service) Login(ctx *abstraction.Context, payload *dto.AuthLoginRequest) (map[string]interface{}, error) {
	var (
		err   error
		data  = new(model.UserEntityModel)
		token string
	)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err = s.UserRepository.FindByEmail(ctx, payload.Email)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if data == nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "email or password is incorrect")
		}

		if err = bcrypt.CompareHashAndPassword([]byte(data.Password), []byte(payload.Password)); err != nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "email or password is incorrect")
		}

		uuidUserLogin := uuid.NewString()
		token, err = s.buildToken(data, uuidUserLogin)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		general.AppendUUIDToRedisArray(s.DbRedis, general.GenerateRedisKeyUserLogin(data.ID), uuidUserLogin)

		return nil
	}); err != nil {
		return nil, err
	}

	resData := map[string]interface{}{
		"id":         data.ID,
		"name":       data.Name,
		"email":      data.Email,
		"entity_id":  data.EntityId,
		"created_at": general.FormatWithZWithoutChangingTime(data.CreatedAt),
		"role": map[string]interface{}{
			"id":   data.Role.ID,
			"name": data.Role.Name,
		},
	}
	if data.UpdatedAt != nil {
		resData["updated_at"] = general.FormatWithZWithoutChangingTime(*data.UpdatedAt)
	}

	return map[string]interface{}{
		"token": token,
		"data":  resData,
	}, nil
}

func (s *service) Logout(ctx *abstraction.Context) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {

		general.RemoveUUIDFromRedisArray(s.DbRedis, general.GenerateRedisKeyUserLogin(ctx.Auth.ID), ctx.Auth.UuidLogin)
		general.RemoveUUIDFromRedisArray(s.DbRedis, constant.REDIS_KEY_AUTO_LOGOUT, ctx.Auth.UuidLogin)

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success logout!",
	}, nil
}

func (s *service) RefreshToken(ctx *abstraction.Context) (map[string]interface{}, error) {
	var token string
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.UserRepository.FindById(ctx, ctx.Auth.ID)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if data == nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "user not found")
		}

		token, err = s.buildToken(data, ctx.Auth.UuidLogin)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"token": token,
	}, nil
}

func (s *service) SendEmailForgotPassword(ctx *abstraction.Context, payload *dto.AuthSendEmailForgotPasswordRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.UserRepository.FindByEmail(ctx, payload.Email)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if data == nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "email not found")
		}

		eksternalToken := new(modelToken.AuthEksternalToken)
		eksternalToken.UserId = data.ID
		token, err := eksternalToken.GenerateTokenEksternal()
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		s.DbRedis.Set(context.Background(), *token, *token, 0)

		if err = gomail.SendMail(data.Email, "Forgot Password for TaskTrack", general.ParseTemplateEmailToHtml("./assets/html/email/notif_forgot_password.html", struct {
			NAME  string
			EMAIL string
			LINK  string
		}{
			NAME:  data.Name,
			EMAIL: data.Email,
			LINK:  config.Get().App.BaseUrl + "/auth/validation/reset-password/" + *token,
		})); err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success send email forgot password!",
	}, nil
}

func (s *service) ValidationResetPassword(ctx *abstraction.Context, payload *dto.AuthValidationResetPasswordRequest) (string, error) {
	userData := new(model.UserEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		_, err := s.DbRedis.Get(context.Background(), payload.Token).Result()
		if err == redis.Nil {
			return errors.New("your token is invalid")
		} else {
			s.DbRedis.Del(context.Background(), payload.Token)
		}

		data, err := modelToken.ValidateTokenEksternal(payload.Token)
		if err != nil {
			return errors.New("your token is invalid")
		}

		userData, err = s.UserRepository.FindById(ctx, data.UserId)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if userData == nil {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "user not found")
		}

		passwordString := general.GeneratePassword(8, 1, 1, 1, 1)
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(passwordString), bcrypt.DefaultCost)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newUserData := new(model.UserEntityModel)
		newUserData.Context = ctx
		newUserData.ID = userData.ID
		newUserData.Password = string(hashedPassword)

		if err = s.UserRepository.Update(ctx, newUserData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		if err = gomail.SendMail(userData.Email, "Reset Password for TaskTrack", general.ParseTemplateEmailToHtml("./assets/html/email/notif_reset_password.html", struct {
			NAME     string
			EMAIL    string
			PASSWORD string
			LINK     string
		}{
			NAME:     userData.Name,
			EMAIL:    userData.Email,
			PASSWORD: passwordString,
			LINK:     config.Get().App.BaseUrl,
		})); err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		userLoginFrom := general.GetRedisUUIDArray(s.DbRedis, general.GenerateRedisKeyUserLogin(userData.ID))
		for _, v := range userLoginFrom {
			general.AppendUUIDToRedisArray(s.DbRedis, constant.REDIS_KEY_AUTO_LOGOUT, v)
		}

		return nil
	}); err != nil {
		return "", err
	}

	return userData.Email, nil
}
