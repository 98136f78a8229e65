package role

import (
	"net/http"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/factory"
	"tasktrack/internal/repository"
	"tasktrack/pkg/constant"
	"tasktrack/pkg/util/response"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Service interface {
	Find(ctx *abstraction.Context) (map[string]interface{}, error)
}

type service struct {
	RoleRepository repository.Role

	DB *gorm.DB
}

func NewService(f *factory.Factory) Service {
	return &service{
		RoleRepository: f.RoleRepository,

		DB: f.Db,
	}
}

func (s *service) Find(ctx *abstraction.Context) (map[string]interface{}, error) {
	if ctx.Auth.RoleID != constant.ROLE_ID_ADMIN {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "this role is not permitted")
	}

	var res []map[string]interface{} = nil
	data, err := s.RoleRepository.Find(ctx)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	for _, v := range data {
		res = append(res, map[string]interface{}{
			"id":          v.ID,
			"name":        v.Name,
			"description": v.Description,
		})
	}
	return map[string]interface{}{
		"data": res,
	}, nil
}
