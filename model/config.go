package model

import "time"

// Config 对应于 config.yaml 的顶级结构
type Config struct {
	Token     string          `mapstructure:"TOKEN"`
	Commands  Commands        `mapstructure:"commands"`
	Survey    SurveyConfig    `mapstructure:"survey"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	API       APIConfig       `mapstructure:"api"`
	Health    HealthConfig    `mapstructure:"health"`
	Presets   PresetsConfig   `mapstructure:"presets"`
	Log       LogConfig       `mapstructure:"log"`
}

// Commands 对应 "commands" 部分
type Commands struct {
	AllowGuilds []string `mapstructure:"allowguilds"`
	Auth        Auth     `mapstructure:"auth"`
}

// Auth 对应 "auth" 部分，两个列表都为空时所有人都可以创建问卷
type Auth struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"adminsroles"`
}

// SurveyConfig 对应 "survey" 部分
type SurveyConfig struct {
	MinMembers      int           `mapstructure:"min_members"`
	MinDuration     time.Duration `mapstructure:"min_duration"`
	MaxDuration     time.Duration `mapstructure:"max_duration"`
	DefaultDuration time.Duration `mapstructure:"default_duration"`
	DeliveryWorkers int           `mapstructure:"delivery_workers"`
}

// GeneratorConfig 对应 "generator" 部分，选择并配置题目生成后端
type GeneratorConfig struct {
	// Backend 为 "http" 或 "genai"
	Backend string        `mapstructure:"backend"`
	BaseURL string        `mapstructure:"base_url"`
	UserID  string        `mapstructure:"user_id"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ArchiveConfig 对应 "archive" 部分
type ArchiveConfig struct {
	Path string `mapstructure:"path"`
}

// APIConfig 对应 "api" 部分，Addr 为空时不启动状态 API
type APIConfig struct {
	Addr string `mapstructure:"addr"`
}

// HealthConfig 对应 "health" 部分，Addr 为空时不启动 gRPC 健康检查服务
type HealthConfig struct {
	Addr string `mapstructure:"addr"`
}

// PresetsConfig 对应 "presets" 部分
type PresetsConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig 对应 "log" 部分
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}
