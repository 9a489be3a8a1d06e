package sui

import "fmt"

// Field 按路径逐层读取Move对象的动态字段，任一层缺失返回nil
// 中间层自动解开 {fields: ...} 包装
func Field(fields map[string]interface{}, path ...string) interface{} {
	var cur interface{} = fields
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		// Move结构体序列化时嵌套一层fields
		if inner, ok := m["fields"].(map[string]interface{}); ok {
			if _, direct := m[key]; !direct {
				m = inner
			}
		}
		cur = m[key]
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FieldString 读取字符串字段，数值字段也转成字符串返回
func FieldString(fields map[string]interface{}, path ...string) string {
	v := Field(fields, path...)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// FieldMap 读取嵌套结构体字段，自动解开fields包装
func FieldMap(fields map[string]interface{}, path ...string) map[string]interface{} {
	v := Field(fields, path...)
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	if inner, ok := m["fields"].(map[string]interface{}); ok {
		return inner
	}
	return m
}
