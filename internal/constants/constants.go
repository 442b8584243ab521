package constants

// 联盟项目状态常量（与前端下拉框保持一致）
const (
	ProgramStatusResearching = "Researching"
	ProgramStatusApplied     = "Applied"
	ProgramStatusApproved    = "Approved"
	ProgramStatusRejected    = "Rejected"
	ProgramStatusPaused      = "Paused"
)

// ProgramStatuses 合法的项目状态列表
var ProgramStatuses = []string{
	ProgramStatusResearching,
	ProgramStatusApplied,
	ProgramStatusApproved,
	ProgramStatusRejected,
	ProgramStatusPaused,
}

// 广告文案钩子风格常量
const (
	HookStyleCuriosity       = "Curiosity"
	HookStyleDiscreet        = "Discreet / Privacy"
	HookStyleLimitedTime     = "Limited-Time"
	HookStyleAudienceFocused = "Audience-Focused"
	HookStyleMix             = "Mix: Use multiple angles"
)

// BaseHookStyles Mix 模式轮换使用的四种基础钩子风格（顺序固定）
var BaseHookStyles = []string{
	HookStyleCuriosity,
	HookStyleDiscreet,
	HookStyleLimitedTime,
	HookStyleAudienceFocused,
}

// 对比指标常量
const (
	CompareMetricCTR = "ctr"
	CompareMetricCR  = "cr"
	CompareMetricEPC = "epc"
)

// 文案来源常量
const (
	CopySourceBuiltin = "builtin"
	CopySourceManual  = "manual"
)

// 外部文案生成提供方常量
const (
	AIGenProviderOpenAI    = "openai"
	AIGenProviderAnthropic = "anthropic"
	AIGenProviderOllama    = "ollama"
)

// Webhook 事件常量
const (
	WebhookEventAdCreated          = "ad_created"
	WebhookEventPerformanceUpdated = "performance_updated"
)

// 流量来源为空时的聚合桶名
const TrafficSourceUnknown = "Unknown"

// 队列与任务常量
const (
	QueueDefault       = "default"
	TaskWebhookDeliver = "webhook:deliver"
)
