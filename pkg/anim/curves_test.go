package anim

import (
	"testing"
)

// TestCurveEndpoints 测试所有曲线满足 f(0)=0、f(1)=1
func TestCurveEndpoints(t *testing.T) {
	curves := map[string]Curve{
		"linear":        Linear,
		"easeInQuad":    EaseInQuad,
		"easeOutQuad":   EaseOutQuad,
		"easeInOutQuad": EaseInOutQuad,
	}

	epsilon := 1e-9
	for name, curve := range curves {
		if got := curve(0); got > epsilon || got < -epsilon {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
		if got := curve(1); got > 1+epsilon || got < 1-epsilon {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
	}
}

// TestCurveByName 测试曲线名称查找和未知名称回退
func TestCurveByName(t *testing.T) {
	if got := CurveByName("linear")(0.3); got != 0.3 {
		t.Errorf("linear(0.3) = %f, want 0.3", got)
	}

	// 未知名称回退为 easeInOutQuad
	fallback := CurveByName("bounce")(0.25)
	want := EaseInOutQuad(0.25)
	if fallback != want {
		t.Errorf("unknown curve fallback(0.25) = %f, want %f", fallback, want)
	}
}

// TestFlashOpacityPulses 测试三脉冲透明度函数
func TestFlashOpacityPulses(t *testing.T) {
	// 每个三分之一区段的保持期中点应为全亮
	holdMidpoints := []float64{1.0 / 6, 3.0 / 6, 5.0 / 6}
	for _, tm := range holdMidpoints {
		if got := FlashOpacity(tm); got != 1 {
			t.Errorf("FlashOpacity(%.3f) = %f, want 1 (hold phase)", tm, got)
		}
	}

	// 脉冲边界处透明度归零
	boundaries := []float64{0, 1.0 / 3, 2.0 / 3}
	epsilon := 1e-9
	for _, tm := range boundaries {
		if got := FlashOpacity(tm); got > epsilon {
			t.Errorf("FlashOpacity(%.3f) = %f, want 0 (pulse boundary)", tm, got)
		}
	}

	// 定义域之外返回 0
	if got := FlashOpacity(1.0); got != 0 {
		t.Errorf("FlashOpacity(1.0) = %f, want 0", got)
	}
	if got := FlashOpacity(-0.1); got != 0 {
		t.Errorf("FlashOpacity(-0.1) = %f, want 0", got)
	}
}

// TestFlashOpacitySymmetric 测试脉冲内淡入淡出对称
func TestFlashOpacitySymmetric(t *testing.T) {
	// 第一个脉冲：局部进度 u 处与 1-u 处透明度相同
	pulse := 1.0 / 3
	epsilon := 1e-9
	for _, u := range []float64{0.1, 0.15, 0.25} {
		in := FlashOpacity(u * pulse)
		out := FlashOpacity((1 - u) * pulse)
		if diff := in - out; diff > epsilon || diff < -epsilon {
			t.Errorf("pulse not symmetric at u=%.2f: fadeIn=%f fadeOut=%f", u, in, out)
		}
	}
}
