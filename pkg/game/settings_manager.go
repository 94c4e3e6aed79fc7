package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AnimationSettings 全局动画设置
// 注意：这些设置是全局的，不绑定到特定牌局
type AnimationSettings struct {
	// SpeedScale 动画速度倍率（0.25 ~ 4.0，1.0 为原速）
	// 过渡时长 = 配置时长 / SpeedScale
	SpeedScale float64 `yaml:"speedScale"`

	// ReducedMotion 减少动态效果
	// 开启后所有过渡退化为瞬时状态切换（无障碍选项）
	ReducedMotion bool `yaml:"reducedMotion"`

	// ShowSlotOutlines 是否绘制槽位轮廓（调试辅助）
	ShowSlotOutlines bool `yaml:"showSlotOutlines"`
}

// DefaultAnimationSettings 返回默认动画设置
func DefaultAnimationSettings() *AnimationSettings {
	return &AnimationSettings{
		SpeedScale:       1.0,
		ReducedMotion:    false,
		ShowSlotOutlines: false,
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "animation"
)

// SettingsManager 设置管理器
// 负责动画设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager     // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *AnimationSettings // 当前设置
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultAnimationSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultAnimationSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultAnimationSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultAnimationSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loadedSettings AnimationSettings
	if err := yaml.Unmarshal(data, &loadedSettings); err != nil {
		sm.settings = DefaultAnimationSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loadedSettings
	sm.settings.SpeedScale = clampSpeedScale(sm.settings.SpeedScale)
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *AnimationSettings {
	return sm.settings
}

// SetSpeedScale 设置动画速度倍率
// 倍率会被限制在 0.25 ~ 4.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSpeedScale(scale float64) {
	sm.settings.SpeedScale = clampSpeedScale(scale)
}

// SetReducedMotion 开关减少动态效果
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// clampSpeedScale 把速度倍率限制在合法范围
func clampSpeedScale(scale float64) float64 {
	if scale < 0.25 {
		return 0.25
	}
	if scale > 4.0 {
		return 4.0
	}
	return scale
}
