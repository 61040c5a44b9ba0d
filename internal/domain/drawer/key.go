package drawer

import (
	"sort"
	"strconv"
	"strings"
)

// Key 抽屉复合键(行字母+列号)
// 设计说明:
// 1. 内部使用结构化的行/列,只在边界处解析和拼接字符串形式(如"A1")
// 2. 行为单个大写字母;列取行字母之后的全部后缀,通常是数字但不强制
// 3. 写入路径不强制键落在规范键空间内——任意可解析的键都被存储层接受,
//    严格校验通过Valid()提供给需要的调用方
type Key struct {
	Row    string // 单个大写字母
	Column string // 行字母后的剩余后缀
}

// ParseKey 解析抽屉编号字符串
// 先去空白并大写;长度不足2(少于一个行字母加一位列号)视为非法
func ParseKey(raw string) (Key, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if len(token) < 2 {
		return Key{}, ErrInvalidKey
	}
	return Key{Row: token[:1], Column: token[1:]}, nil
}

// String 返回"行字母+列号"形式(如"A1")
func (k Key) String() string {
	return k.Row + k.Column
}

// Valid 键是否落在规范键空间内
// 小抽屉行A-D列1-9,大抽屉行E-G列1-4
func (k Key) Valid() bool {
	col, err := strconv.Atoi(k.Column)
	if err != nil || col < 1 {
		return false
	}
	switch k.Row {
	case "A", "B", "C", "D":
		return col <= 9
	case "E", "F", "G":
		return col <= 4
	default:
		return false
	}
}

// AllKeys 规范键空间的确定性枚举(共48个)
// 行按声明顺序,列升序;用于补齐展示和空位分配
func AllKeys() []string {
	keys := make([]string, 0, 48)
	for _, row := range []string{"A", "B", "C", "D"} {
		for col := 1; col <= 9; col++ {
			keys = append(keys, row+strconv.Itoa(col))
		}
	}
	for _, row := range []string{"E", "F", "G"} {
		for col := 1; col <= 4; col++ {
			keys = append(keys, row+strconv.Itoa(col))
		}
	}
	return keys
}

// IsCanonicalKey 字符串形式的键是否属于规范48键
func IsCanonicalKey(key string) bool {
	k, err := ParseKey(key)
	if err != nil {
		return false
	}
	return k.Valid()
}

// Pad 补齐库存快照:规范键空间内缺失的键填入空抽屉
// 只做读取时的投影,不写库;已有条目(包括键空间之外的键)原样保留
func Pad(inv Inventory) Inventory {
	if inv == nil {
		inv = Inventory{}
	}
	for _, key := range AllKeys() {
		if _, ok := inv[key]; !ok {
			inv[key] = Slot{}
		}
	}
	return inv
}

// FirstFreeKey 返回字典序最小的未占用规范键
// "占用"以快照中已有条目为准(包括补齐产生的空条目);无空位时返回false
func FirstFreeKey(inv Inventory) (string, bool) {
	free := make([]string, 0)
	for _, key := range AllKeys() {
		if _, used := inv[key]; !used {
			free = append(free, key)
		}
	}
	if len(free) == 0 {
		return "", false
	}
	sort.Strings(free)
	return free[0], true
}
