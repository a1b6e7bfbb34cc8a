package tools

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordCost 与注册流程保持一致
const passwordCost = 12

// PasswordEncrypt 使用 bcrypt 加密密码
func PasswordEncrypt(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	PanicOnErr(err)
	return string(hashed)
}

// PasswordCompare 校验明文密码与哈希是否匹配
func PasswordCompare(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
