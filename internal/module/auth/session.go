package auth

import (
	"errors"

	"community-portal/internal/global/metrics"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"

	"github.com/gin-gonic/gin"
)

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser 会话中对外可见的用户信息
type SessionUser struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	MemberID *uint  `json:"memberId"`
}

func sessionUser(d *session.Data) SessionUser {
	return SessionUser{
		ID:       d.UserID,
		Email:    d.Email,
		Name:     d.Name,
		Role:     d.Role,
		MemberID: d.MemberID,
	}
}

// Login 邮箱密码登录，成功后写入服务端会话和 HttpOnly cookie
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if NormalizeEmail(req.Email) == "" || req.Password == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Email and password are required"))
		return
	}

	user, err := Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, response.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("session", "failure").Inc()
		}
		response.Fail(c, err)
		return
	}

	data := session.Data{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		MemberID: user.MemberID(),
	}
	id, err := session.Default.Create(c.Request.Context(), data)
	if err != nil {
		log.Error("创建会话失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	session.SetCookie(c, id)
	metrics.LoginAttemptsTotal.WithLabelValues("session", "success").Inc()

	log.Info("用户登录成功", "user_id", user.ID, "role", user.Role)
	response.Success(c, gin.H{"user": sessionUser(&data)})
}

// Logout 删除会话，未登录时同样返回成功
func Logout(c *gin.Context) {
	if id := session.CookieValue(c); id != "" && session.Default != nil {
		if err := session.Default.Delete(c.Request.Context(), id); err != nil {
			log.Warn("删除会话失败", "error", err)
		}
	}
	session.ClearCookie(c)
	response.Success(c)
}

// CurrentSession 返回当前登录用户
func CurrentSession(c *gin.Context) {
	data, ok := session.FromContext(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	response.Success(c, gin.H{"user": sessionUser(data)})
}
