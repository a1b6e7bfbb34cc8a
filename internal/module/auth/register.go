package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"community-portal/config"
	"community-portal/internal/global/database"
	"community-portal/internal/global/metrics"
	"community-portal/internal/global/notify"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// verificationTTL 邮箱验证链接有效期
const verificationTTL = 24 * time.Hour

const registeredMessage = "Registration successful! Please check your email to verify your account. Your membership is pending admin approval."

type RegisterReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone"`
	FirmName        string `json:"firmName"`
	Business        string `json:"business"`
	Locality        string `json:"locality"`
	Gotra           string `json:"gotra"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// validate 返回面向用户的错误提示
func (r *RegisterReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	switch {
	case r.Name == "" || r.Email == "" || r.Password == "":
		return "Name, email, and password are required"
	case !validEmail(r.Email):
		return "Invalid email format"
	case len(r.Password) < 6:
		return "Password must be at least 6 characters long"
	}
	return ""
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// splitName 注册时只有姓名一个字段，第一个词作为名，其余作为姓
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Register 会员自助注册，用户和会员资料在同一事务中创建，会员需管理员审核后才公开
func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if msg := req.validate(); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}

	token, err := newVerificationToken()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	expiry := time.Now().Add(verificationTTL)
	first, last := splitName(req.Name)

	user := model.User{
		Name:                    req.Name,
		Email:                   req.Email,
		Password:                tools.PasswordEncrypt(req.Password),
		Phone:                   strings.TrimSpace(req.Phone),
		Role:                    model.RoleMember,
		Status:                  model.UserStatusActive,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	member := model.Member{
		FirstName:        first,
		LastName:         last,
		Email:            req.Email,
		PhonePrimary:     strings.TrimSpace(req.Phone),
		BusinessName:     strings.TrimSpace(req.FirmName),
		BusinessCategory: strings.TrimSpace(req.Business),
		Locality:         strings.TrimSpace(req.Locality),
		Gotra:            strings.TrimSpace(req.Gotra),
		ProfileImageURL:  strings.TrimSpace(req.ProfileImageURL),
		MembershipType:   model.MembershipRegular,
		Status:           model.UserStatusActive,
		JoinedDate:       time.Now(),
		IsApproved:       false,
		IsActive:         true,
	}

	err = database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		member.UserID = &user.ID
		return tx.Create(&member).Error
	})
	if database.IsDuplicateKey(err) {
		log.Warn("注册失败：邮箱已存在", "email", req.Email)
		response.Fail(c, response.ErrAlreadyExists.WithTips("User with this email already exists"))
		return
	}
	if err != nil {
		log.Error("注册失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	metrics.RegistrationsTotal.Inc()
	log.Info("新会员注册", "user_id", user.ID, "member_id", member.ID)
	notifyRegistration(c.Request.Context(), &user, &member, token)

	response.Created(c, gin.H{
		"message": registeredMessage,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"requiresEmailVerification": true,
	})
}

// notifyRegistration 发送验证邮件并通知管理员，失败只记录日志
func notifyRegistration(ctx context.Context, user *model.User, member *model.Member, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	if err := notify.Mail.SendVerification(ctx, user.Email, user.Name, verificationLink(token)); err != nil {
		log.Warn("发送验证邮件失败", "error", err, "user_id", user.ID)
	}
	if err := notify.Admin.MemberRegistered(ctx, notify.MemberRegisteredEvent{
		MemberID: member.ID,
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
	}); err != nil {
		log.Warn("通知管理员失败", "error", err, "user_id", user.ID)
	}
}

func verificationLink(token string) string {
	cfg := config.Get()
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.Prefix, "/") +
		"/auth/verify-email?token=" + url.QueryEscape(token)
}

type VerifyEmailReq struct {
	Token string `json:"token"`
}

// verify 校验 token 并标记邮箱已验证，token 无效或过期时返回 false
func verify(ctx context.Context, token string) (bool, error) {
	var user model.User
	err := database.DB.WithContext(ctx).
		Where("verification_token = ? AND verification_token_expiry > ?", token, time.Now()).
		First(&user).Error
	if database.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = database.DB.WithContext(ctx).Model(&user).Updates(map[string]any{
		"is_email_verified":         true,
		"verification_token":        nil,
		"verification_token_expiry": nil,
	}).Error
	if err != nil {
		return false, err
	}
	log.Info("邮箱验证成功", "user_id", user.ID)
	return true, nil
}

func VerifyEmail(c *gin.Context) {
	var req VerifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Verification token is required"))
		return
	}
	ok, err := verify(c.Request.Context(), strings.TrimSpace(req.Token))
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Invalid or expired verification token"))
		return
	}
	response.Success(c, gin.H{"message": "Email verified successfully"})
}

// VerifyEmailRedirect 邮件中的链接，处理后重定向到前端登录页
func VerifyEmailRedirect(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Verification token is required"))
		return
	}
	loginURL := strings.TrimRight(config.Get().BaseURL, "/") + "/login"

	ok, err := verify(c.Request.Context(), token)
	switch {
	case err != nil:
		log.Error("邮箱验证失败", "error", err)
		c.Redirect(http.StatusFound, loginURL+"?error=verification-failed")
	case !ok:
		c.Redirect(http.StatusFound, loginURL+"?error=invalid-token")
	default:
		c.Redirect(http.StatusFound, loginURL+"?success=email-verified")
	}
}
