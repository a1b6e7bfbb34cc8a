package database

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// IsDuplicateKey 判断是否违反唯一索引
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsNotFound gorm.ErrRecordNotFound 的简写
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
