package service

import "errors"

// 服务层统一错误定义，handler 按 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("旧密码错误")
	ErrPasswordTooShort   = errors.New("新密码长度不能少于 6 位")

	ErrProgramNameRequired   = errors.New("项目名称不能为空")
	ErrProgramSignupRequired = errors.New("注册链接不能为空")
	ErrProgramStatusInvalid  = errors.New("项目状态不合法")
	ErrProgramNotFound       = errors.New("联盟项目不存在")

	ErrAdTitleRequired      = errors.New("创意标题不能为空")
	ErrAdCopyIncomplete     = errors.New("关闭自动生成时需同时填写标题与正文")
	ErrAdNotFound           = errors.New("广告创意不存在")
	ErrVariantCountInvalid  = errors.New("变体数量必须在 1 到 5 之间")
	ErrVariantsNeedAutoCopy = errors.New("生成多个变体时必须启用自动生成")

	ErrCounterNegative  = errors.New("投放计数不能为负数")
	ErrCompareMetricBad = errors.New("对比指标不合法")
	ErrCompareTooFew    = errors.New("至少选择两条创意参与对比")
)
