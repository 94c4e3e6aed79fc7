package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TransitionConfig 卡牌过渡动画的时序配置
//
// 原则：所有时序参数都是可配置常量，不在代码中硬编码
// （批次超时和布局扫描节流的具体数值不影响正确性，只影响观感）
type TransitionConfig struct {
	// MoveDurationMs 普通移动动画时长（毫秒）
	MoveDurationMs int `yaml:"moveDurationMs"`

	// FlashDurationMs 高亮闪烁动画时长（毫秒）
	// 覆盖完整的三次脉冲周期
	FlashDurationMs int `yaml:"flashDurationMs"`

	// BatchTimeoutMs 批次级超时（毫秒）
	// 计时器在批次开始时启动，并在每个描述符开始执行时重置；
	// 超时后强制结束批次并应用权威状态，保证影子状态不会被卡死
	BatchTimeoutMs int `yaml:"batchTimeoutMs"`

	// BoundsScanThrottleMs 布局上报节流间隔（毫秒）
	// 表现层最多每隔此间隔向 Position Registry 上报一次槽位坐标
	BoundsScanThrottleMs int `yaml:"boundsScanThrottleMs"`

	// Curve 缓动曲线名称（linear / easeInQuad / easeOutQuad / easeInOutQuad）
	Curve string `yaml:"curve"`
}

// DefaultTransitionConfig 返回默认过渡配置
// 默认 4 秒批次超时、100ms 扫描节流
func DefaultTransitionConfig() *TransitionConfig {
	return &TransitionConfig{
		MoveDurationMs:       450,
		FlashDurationMs:      900,
		BatchTimeoutMs:       4000,
		BoundsScanThrottleMs: 100,
		Curve:                "easeInOutQuad",
	}
}

// LoadTransitionConfig 从 YAML 文件加载过渡配置
//
// 参数:
//   - path: 配置文件路径（如 "data/transitions.yaml"）
//
// 返回:
//   - *TransitionConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadTransitionConfig(path string) (*TransitionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transition config: %w", err)
	}
	return ParseTransitionConfig(data)
}

// ParseTransitionConfig 从 YAML 字节流解析过渡配置
// 未出现的字段使用默认值填充
func ParseTransitionConfig(data []byte) (*TransitionConfig, error) {
	config := DefaultTransitionConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse transition config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transition config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 时长必须为正：0 或负的动画时长会退化为瞬时完成（见 anim.Driver），
// 但配置层面直接拒绝，避免掩盖配置错误
func (c *TransitionConfig) Validate() error {
	if c.MoveDurationMs <= 0 {
		return fmt.Errorf("moveDurationMs must be positive, got %d", c.MoveDurationMs)
	}
	if c.FlashDurationMs <= 0 {
		return fmt.Errorf("flashDurationMs must be positive, got %d", c.FlashDurationMs)
	}
	if c.BatchTimeoutMs <= 0 {
		return fmt.Errorf("batchTimeoutMs must be positive, got %d", c.BatchTimeoutMs)
	}
	if c.BoundsScanThrottleMs < 0 {
		return fmt.Errorf("boundsScanThrottleMs must be non-negative, got %d", c.BoundsScanThrottleMs)
	}
	return nil
}

// MoveDuration 返回移动动画时长（秒）
func (c *TransitionConfig) MoveDuration() float64 {
	return float64(c.MoveDurationMs) / 1000.0
}

// FlashDuration 返回闪烁动画时长（秒）
func (c *TransitionConfig) FlashDuration() float64 {
	return float64(c.FlashDurationMs) / 1000.0
}

// BatchTimeout 返回批次超时（秒）
func (c *TransitionConfig) BatchTimeout() float64 {
	return float64(c.BatchTimeoutMs) / 1000.0
}

// BoundsScanThrottle 返回布局扫描节流间隔（秒）
func (c *TransitionConfig) BoundsScanThrottle() float64 {
	return float64(c.BoundsScanThrottleMs) / 1000.0
}
