package drawer

import (
	apperrors "github.com/xiebiao/drawerbox/pkg/errors"
)

// 抽屉领域错误定义
var (
	// ErrInvalidKey 抽屉编号非法(至少为一个行字母加列号,如A1)
	ErrInvalidKey = apperrors.New(apperrors.ErrCodeInvalidKey, "抽屉编号非法(至少为一个行字母加列号,如A1)")

	// ErrInvalidQuantity 数量非法(必须为非负整数)
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须为非负整数")

	// ErrMalformedRow 记录格式非法(字段数错误或数量不是整数)
	ErrMalformedRow = apperrors.New(apperrors.ErrCodeMalformedRow, "记录格式非法")

	// ErrNoFreeDrawer 没有可分配的空抽屉
	ErrNoFreeDrawer = apperrors.New(apperrors.ErrCodeNoFreeDrawer, "没有可分配的空抽屉")
)
