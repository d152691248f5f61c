package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"menlo.ai/catalog-admin/app/domain/common"
	"menlo.ai/catalog-admin/app/domain/query"
	"menlo.ai/catalog-admin/app/domain/user"
	"menlo.ai/catalog-admin/app/interfaces/http/middleware"
	"menlo.ai/catalog-admin/app/interfaces/http/requests"
	"menlo.ai/catalog-admin/app/interfaces/http/responses"
	"menlo.ai/catalog-admin/app/utils/functional"
	"menlo.ai/catalog-admin/app/utils/logger"
)

type UsersRoute struct{}

func NewUsersRoute() *UsersRoute {
	return &UsersRoute{}
}

func (route *UsersRoute) RegisterRouter(router gin.IRouter) {
	usersRouter := router.Group("/users", middleware.RequireSession())
	usersRouter.GET("", route.ListUsers)
	usersRouter.GET("/:user_id", route.GetUser)
}

type CompanyResponse struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type AddressResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type UserResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Gender    string          `json:"gender"`
	Phone     string          `json:"phone"`
	Image     string          `json:"image"`
	Company   CompanyResponse `json:"company"`
	Address   AddressResponse `json:"address"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    u.Gender,
		Phone:     u.Phone,
		Image:     u.Image,
		Company:   CompanyResponse{Name: u.Company.Name, Title: u.Company.Title},
		Address:   AddressResponse{Address: u.Address.Address, City: u.Address.City, State: u.Address.State},
	}
}

// ListUsers ignores the category filter; users have none.
func (route *UsersRoute) ListUsers(reqCtx *gin.Context) {
	ws, _ := middleware.GetWorkspace(reqCtx)
	params, err := query.GetParamsFromQuery(reqCtx)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c4d27a90-8d0c-11f0-b6e1-5a8f2d0c9e31",
			Error: err.Error(),
		})
		return
	}

	if err := ws.Users.Fetch(context.WithoutCancel(reqCtx.Request.Context()), *params); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"session_id": ws.ID,
			"error":      err.Error(),
		}).Warn("user fetch failed")
	}

	state := ws.Users.State()
	reqCtx.JSON(http.StatusOK, responses.ListResponse[UserResponse]{
		Status:     responses.ResponseCodeOk,
		Items:      functional.Map(state.Items, toUserResponse),
		Total:      state.Total,
		Skip:       params.Skip,
		Limit:      params.Limit,
		TotalPages: query.TotalPages(state.Total, params.Limit),
		Loading:    state.Loading,
		Error:      state.Error,
	})
}

func (route *UsersRoute) GetUser(reqCtx *gin.Context) {
	ws, _ := middleware.GetWorkspace(reqCtx)
	id, err := requests.GetIntParam(reqCtx, "user_id")
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c4d27c5c-8d0c-11f0-9a07-e3b5f1c8d442",
			Error: err.Error(),
		})
		return
	}

	u, err := ws.Users.GetByID(reqCtx.Request.Context(), id)
	if err != nil {
		responses.AbortWithError(reqCtx, responses.RemoteStatus(err), common.NewError(err, "c4d27dd8-8d0c-11f0-8e2c-07a9c4b6f553"))
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[UserResponse]{
		Status: responses.ResponseCodeOk,
		Result: toUserResponse(*u),
	})
}
