package ecs

import "reflect"

// 本文件提供泛型访问辅助函数，避免调用方手写 reflect.TypeOf 和类型断言
// 组件类型参数 T 必须是组件结构体的指针类型（如 *components.BoundsComponent）

// typeOf 返回组件指针类型 T 的 reflect.Type
func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// AddComponent 为实体添加组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有组件类型 T1 的所有实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	t1 := typeOf[T1]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, found := compMap[t1]; found {
			result = append(result, id)
		}
	}
	return result
}

// GetEntitiesWith2 查询同时拥有组件类型 T1、T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	t1 := typeOf[T1]()
	t2 := typeOf[T2]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, found := compMap[t1]; !found {
			continue
		}
		if _, found := compMap[t2]; !found {
			continue
		}
		result = append(result, id)
	}
	return result
}
