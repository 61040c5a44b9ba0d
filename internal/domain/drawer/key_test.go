package drawer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllKeys 规范键空间共48个键,行按声明顺序、列升序
func TestAllKeys(t *testing.T) {
	keys := AllKeys()
	require.Len(t, keys, 48)

	// 小抽屉行A-D各9列,在前
	assert.Equal(t, "A1", keys[0])
	assert.Equal(t, "A9", keys[8])
	assert.Equal(t, "D9", keys[35])
	// 大抽屉行E-G各4列,在后
	assert.Equal(t, "E1", keys[36])
	assert.Equal(t, "G4", keys[47])
}

// TestParseKey 键解析:去空白、大写、长度校验
func TestParseKey(t *testing.T) {
	k, err := ParseKey(" a12 ")
	require.NoError(t, err)
	assert.Equal(t, "A", k.Row)
	assert.Equal(t, "12", k.Column)
	assert.Equal(t, "A12", k.String())

	_, err = ParseKey("A")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = ParseKey("")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// TestKeyValid 规范范围校验:A-D列1-9,E-G列1-4
func TestKeyValid(t *testing.T) {
	valid := []string{"A1", "A9", "D9", "E1", "G4"}
	for _, s := range valid {
		k, err := ParseKey(s)
		require.NoError(t, err)
		assert.True(t, k.Valid(), "%s应为规范键", s)
	}

	invalid := []string{"E5", "G9", "H1", "A0", "A10", "AX"}
	for _, s := range invalid {
		k, err := ParseKey(s)
		require.NoError(t, err)
		assert.False(t, k.Valid(), "%s不应为规范键", s)
	}
}

// TestPad 补齐后规范键全部存在,已有条目和范围外的键原样保留
func TestPad(t *testing.T) {
	inv := Inventory{
		"B3": {Name: "Bolts", Qty: 2},
		"Z9": {Name: "范围外", Qty: 1}, // 系统容忍但不产生范围外的键
	}
	padded := Pad(inv)

	assert.Len(t, padded, 49) // 48个规范键 + Z9
	assert.Equal(t, Slot{Name: "Bolts", Qty: 2}, padded["B3"])
	assert.Equal(t, Slot{Name: "范围外", Qty: 1}, padded["Z9"])
	for _, key := range AllKeys() {
		_, ok := padded[key]
		assert.True(t, ok, "补齐后缺少规范键%s", key)
	}

	// nil输入返回全空的规范键空间
	assert.Len(t, Pad(nil), 48)
}

// TestFirstFreeKey 空位分配取字典序最小的未占用规范键
func TestFirstFreeKey(t *testing.T) {
	key, ok := FirstFreeKey(Inventory{})
	require.True(t, ok)
	assert.Equal(t, "A1", key)

	key, ok = FirstFreeKey(Inventory{"A1": {Name: "x", Qty: 1}, "A2": {}})
	require.True(t, ok)
	assert.Equal(t, "A3", key)

	// 规范键全部占用时无空位
	full := Pad(Inventory{})
	_, ok = FirstFreeKey(full)
	assert.False(t, ok)
}
