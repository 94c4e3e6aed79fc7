package ecs

import (
	"reflect"
	"testing"
)

type testPosComp struct {
	X, Y float64
}

type testTagComp struct {
	Name string
}

// TestCreateAndGetComponent 测试实体创建和组件读写
func TestCreateAndGetComponent(t *testing.T) {
	em := NewEntityManager()

	id := em.CreateEntity()
	if id == 0 {
		t.Fatal("CreateEntity() returned invalid ID 0")
	}

	em.AddComponent(id, &testPosComp{X: 10, Y: 20})

	// reflect 风格访问
	comp, ok := em.GetComponent(id, reflect.TypeOf(&testPosComp{}))
	if !ok {
		t.Fatal("GetComponent() did not find component")
	}
	pos := comp.(*testPosComp)
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("component = {%.1f, %.1f}, want {10, 20}", pos.X, pos.Y)
	}

	// 泛型风格访问
	pos2, ok := GetComponent[*testPosComp](em, id)
	if !ok {
		t.Fatal("generic GetComponent() did not find component")
	}
	if pos2 != pos {
		t.Error("generic access should return the same component instance")
	}
}

// TestRemoveComponent 测试组件移除
func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTagComp{Name: "a"})

	RemoveComponent[*testTagComp](em, id)

	if HasComponent[*testTagComp](em, id) {
		t.Error("component should be removed")
	}
}

// TestDeferredDestroy 测试延迟删除实体
func TestDeferredDestroy(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTagComp{Name: "doomed"})

	em.DestroyEntity(id)

	// 清理前组件仍可访问（遍历中安全）
	if !HasComponent[*testTagComp](em, id) {
		t.Error("component should survive until RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()

	if HasComponent[*testTagComp](em, id) {
		t.Error("component should be gone after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount() = %d, want 0", em.EntityCount())
	}
}

// TestGetEntitiesWith 测试组件组合查询
func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	AddComponent(em, both, &testPosComp{})
	AddComponent(em, both, &testTagComp{})

	posOnly := em.CreateEntity()
	AddComponent(em, posOnly, &testPosComp{})

	got1 := GetEntitiesWith1[*testPosComp](em)
	if len(got1) != 2 {
		t.Errorf("GetEntitiesWith1 = %d entities, want 2", len(got1))
	}

	got2 := GetEntitiesWith2[*testPosComp, *testTagComp](em)
	if len(got2) != 1 || got2[0] != both {
		t.Errorf("GetEntitiesWith2 = %v, want [%d]", got2, both)
	}
}
