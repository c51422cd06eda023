package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突(错误码1062)
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:部分驱动版本未映射到gorm.ErrDuplicatedKey
	return strings.Contains(err.Error(), "Duplicate entry")
}

// joinGenres / splitGenres 分类标签与逗号分隔存储格式互转
func joinGenres(genres []string) string {
	return strings.Join(genres, ",")
}

func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
