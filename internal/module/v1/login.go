package v1

import (
	"errors"

	"community-portal/internal/global/jwt"
	"community-portal/internal/global/metrics"
	"community-portal/internal/global/response"
	"community-portal/internal/module/auth"

	"github.com/gin-gonic/gin"
)

type LoginResp struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	MemberID *uint  `json:"memberId"`
}

// Login 与会话登录共用校验逻辑，成功后签发 token 而不是写 cookie
func Login(c *gin.Context) {
	var req auth.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Email and password are required"))
		return
	}
	if auth.NormalizeEmail(req.Email) == "" || req.Password == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Email and password are required"))
		return
	}

	user, err := auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, response.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("token", "failure").Inc()
		}
		response.Fail(c, err)
		return
	}

	token, err := jwt.CreateToken(jwt.Payload{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		MemberID: user.MemberID(),
	})
	if err != nil {
		log.Error("签发 token 失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("token", "success").Inc()

	response.Success(c, LoginResp{
		Token: token,
		User: LoginUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			MemberID: user.MemberID(),
		},
	})
}
