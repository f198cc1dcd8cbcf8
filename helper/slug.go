package helper

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueSlug tạo slug không trùng trong bảng của m, thêm hậu tố -1, -2...
// excludeId bỏ qua chính bản ghi đang sửa
func GenerateUniqueSlug(tx *gorm.DB, m interface{}, name string, excludeId uint) string {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	result := base
	i := 1

	for {
		var count int64
		query := tx.Model(m).Unscoped().Where("slug = ?", result)
		if excludeId != 0 {
			query = query.Where("id != ?", excludeId)
		}
		query.Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
