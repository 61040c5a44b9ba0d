package drawer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSnapshot(inv Inventory) SnapshotFunc {
	return func() Inventory { return inv }
}

// TestResolveExplicit 三字段记录:编号直接作为键,数量0强制清空名称
func TestResolveExplicit(t *testing.T) {
	r := NewResolver(staticSnapshot(Inventory{}))

	target, err := r.ResolveExplicit("b3", "Bolts", 5)
	require.NoError(t, err)
	assert.Equal(t, "B3", target.Key.String())
	assert.Equal(t, "Bolts", target.Name)
	assert.Equal(t, 5, target.Qty)

	// 按零删除约定:数量0时名称被忽略
	target, err = r.ResolveExplicit("B3", "Bolts", 0)
	require.NoError(t, err)
	assert.Equal(t, "", target.Name)
	assert.Equal(t, 0, target.Qty)

	// 存在性不做检查,范围外的键也接受
	target, err = r.ResolveExplicit("Z9", "Odd", 1)
	require.NoError(t, err)
	assert.Equal(t, "Z9", target.Key.String())

	_, err = r.ResolveExplicit("A", "TooShort", 1)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// TestResolvePairPrecedence 二字段记录的优先级:编号引用 > 名称匹配 > 空位分配
func TestResolvePairPrecedence(t *testing.T) {
	inv := Inventory{"B3": {Name: "Bolts", Qty: 2}}
	r := NewResolver(staticSnapshot(inv))

	// 2a. 首字段是已有键:保留原名称只改数量
	target, err := r.ResolveFields([]string{"B3", "7"})
	require.NoError(t, err)
	assert.Equal(t, "B3", target.Key.String())
	assert.Equal(t, "Bolts", target.Name)
	assert.Equal(t, 7, target.Qty)

	// 2a. 规范键即使未存储也视为直接引用(原名称为空)
	target, err = r.ResolveFields([]string{"a5", "3"})
	require.NoError(t, err)
	assert.Equal(t, "A5", target.Key.String())
	assert.Equal(t, "", target.Name)

	// 2b. 名称大小写不敏感匹配
	target, err = r.ResolveFields([]string{"bolts", "9"})
	require.NoError(t, err)
	assert.Equal(t, "B3", target.Key.String())
	assert.Equal(t, "bolts", target.Name) // 采用输入的写法
	assert.Equal(t, 9, target.Qty)

	// 2c. 全新名称:分配字典序最小的空闲规范键
	target, err = r.ResolveFields([]string{"Screws", "4"})
	require.NoError(t, err)
	assert.Equal(t, "A1", target.Key.String())
	assert.Equal(t, "Screws", target.Name)
	assert.Equal(t, 4, target.Qty)
}

// TestResolvePairZeroQty 数量0在编号引用和名称匹配时清空名称,新建时保留
func TestResolvePairZeroQty(t *testing.T) {
	inv := Inventory{"B3": {Name: "Bolts", Qty: 2}}
	r := NewResolver(staticSnapshot(inv))

	target, err := r.ResolveFields([]string{"B3", "0"})
	require.NoError(t, err)
	assert.Equal(t, "", target.Name)

	target, err = r.ResolveFields([]string{"Bolts", "0"})
	require.NoError(t, err)
	assert.Equal(t, "B3", target.Key.String())
	assert.Equal(t, "", target.Name)

	// 新建路径不触发清空约定
	target, err = r.ResolveFields([]string{"Widgets", "0"})
	require.NoError(t, err)
	assert.Equal(t, "Widgets", target.Name)
	assert.Equal(t, 0, target.Qty)
}

// TestResolvePairNoFreeKey 键空间全部占用时新名称记录被跳过
func TestResolvePairNoFreeKey(t *testing.T) {
	r := NewResolver(staticSnapshot(Pad(Inventory{})))

	_, err := r.ResolveFields([]string{"Overflow", "1"})
	assert.ErrorIs(t, err, ErrNoFreeDrawer)
}

// TestResolveFieldsMalformed 字段数错误或数量非整数都是格式非法
func TestResolveFieldsMalformed(t *testing.T) {
	r := NewResolver(staticSnapshot(Inventory{}))

	cases := [][]string{
		{"A1"},
		{"A1", "Name", "5", "extra"},
		{"A1", "Name", "notanumber"},
		{"A1", "notanumber"},
	}
	for _, fields := range cases {
		_, err := r.ResolveFields(fields)
		assert.ErrorIs(t, err, ErrMalformedRow, "字段%v应判为格式非法", fields)
	}
}

// TestResolveLine 纯文本行:"编号: 名称 (数量)"优先,失败回退到逗号分隔
func TestResolveLine(t *testing.T) {
	r := NewResolver(staticSnapshot(Inventory{}))

	target, err := r.ResolveLine("a2: Washers (12)")
	require.NoError(t, err)
	assert.Equal(t, "A2", target.Key.String())
	assert.Equal(t, "Washers", target.Name)
	assert.Equal(t, 12, target.Qty)

	// 名称里带括号:数量取最后一对括号
	target, err = r.ResolveLine("B1: M3 (hex) bolts (8)")
	require.NoError(t, err)
	assert.Equal(t, "B1", target.Key.String())
	assert.Equal(t, "M3 (hex) bolts", target.Name)
	assert.Equal(t, 8, target.Qty)

	// 冒号形态不成立时回退到逗号分隔
	target, err = r.ResolveLine("C4,Nuts,6")
	require.NoError(t, err)
	assert.Equal(t, "C4", target.Key.String())
	assert.Equal(t, "Nuts", target.Name)

	_, err = r.ResolveLine("")
	assert.ErrorIs(t, err, ErrMalformedRow)
	_, err = r.ResolveLine("just some words")
	assert.ErrorIs(t, err, ErrMalformedRow)
}
