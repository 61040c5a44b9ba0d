package drawer

import (
	"sort"
	"strconv"
	"strings"
)

// Target 解析结果:一次具体的抽屉写入目标
type Target struct {
	Key  Key    // 写入的抽屉键
	Name string // 写入的名称
	Qty  int    // 写入的数量
}

// SnapshotFunc 返回目标柜子当前库存的最新快照(未补齐)
// 每条记录解析时调用一次,保证空位分配和编号匹配基于最新状态
type SnapshotFunc func() Inventory

// Resolver 解析引擎:把松散的人工输入记录映射到具体的抽屉键
//
// 按优先级处理三种记录形态:
//  1. 显式三字段 (编号,名称,数量) —— 编号大写后直接作为键,不检查是否存在
//  2. 二字段 (首字段,数量) —— 依次尝试:
//     a. 首字段是抽屉编号(规范键或快照中已有的键) → 保留原名称只改数量
//     b. 首字段与某抽屉名称大小写不敏感相等 → 更新该抽屉的数量
//     c. 都不是 → 视为新物品名,分配字典序最小的空闲规范键;无空位则跳过
//  3. 纯文本行 "编号: 名称 (数量)" —— 不匹配时回退到逗号分隔解析
//
// 数量为0是显式的"清空"约定:形态1和2a/2b强制把名称置空;
// 形态2c是新建,名称保留。格式非法的记录返回错误由调用方逐条跳过。
type Resolver struct {
	snapshot SnapshotFunc
}

// NewResolver 创建解析引擎
func NewResolver(snapshot SnapshotFunc) *Resolver {
	return &Resolver{snapshot: snapshot}
}

// ResolveExplicit 解析显式三字段记录
// 数量为0时强制清空名称(按零删除约定)
func (r *Resolver) ResolveExplicit(id, name string, qty int) (Target, error) {
	key, err := ParseKey(id)
	if err != nil {
		return Target{}, err
	}
	if qty == 0 {
		name = ""
	}
	return Target{Key: key, Name: strings.TrimSpace(name), Qty: qty}, nil
}

// ResolveFields 按字段数解析逗号分隔记录
// 字段数不是2或3,或数量不是整数时返回ErrMalformedRow
func (r *Resolver) ResolveFields(fields []string) (Target, error) {
	switch len(fields) {
	case 3:
		qty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return Target{}, ErrMalformedRow
		}
		return r.ResolveExplicit(fields[0], fields[1], qty)
	case 2:
		qty, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return Target{}, ErrMalformedRow
		}
		return r.resolvePair(strings.TrimSpace(fields[0]), qty)
	default:
		return Target{}, ErrMalformedRow
	}
}

// ResolveLine 解析一行纯文本记录
// 优先尝试"编号: 名称 (数量)"形态,失败则回退到逗号分隔解析
func (r *Resolver) ResolveLine(line string) (Target, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Target{}, ErrMalformedRow
	}

	if strings.Contains(line, ":") && strings.Contains(line, "(") && strings.Contains(line, ")") {
		if target, ok := r.parseColonShape(line); ok {
			return target, nil
		}
	}

	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return r.ResolveFields(parts)
}

// parseColonShape 解析"编号: 名称 (数量)"形态
// 在第一个冒号处切分编号,数量取最后一对括号(名称本身可以含括号);
// 任何一步不满足都返回false交给回退解析
func (r *Resolver) parseColonShape(line string) (Target, bool) {
	idx := strings.Index(line, ":")
	id := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+1:])

	open := strings.LastIndex(rest, "(")
	closing := strings.LastIndex(rest, ")")
	if open == -1 || closing == -1 || closing <= open {
		return Target{}, false
	}

	qty, err := strconv.Atoi(strings.TrimSpace(rest[open+1 : closing]))
	if err != nil {
		return Target{}, false
	}
	name := strings.TrimSpace(rest[:open])

	target, err := r.ResolveExplicit(id, name, qty)
	if err != nil {
		return Target{}, false
	}
	return target, true
}

// resolvePair 解析二字段记录(首字段,数量)
func (r *Resolver) resolvePair(first string, qty int) (Target, error) {
	inv := r.snapshot()
	upper := strings.ToUpper(first)

	// 2a. 首字段是抽屉编号:规范键空间内的键,或快照中已存在的键
	if _, stored := inv[upper]; stored || IsCanonicalKey(upper) {
		key, err := ParseKey(upper)
		if err == nil {
			name := inv[upper].Name
			if qty == 0 {
				name = ""
			}
			return Target{Key: key, Name: name, Qty: qty}, nil
		}
	}

	// 2b. 按名称大小写不敏感匹配已有抽屉
	// 键升序遍历保证同名多抽屉时的确定性
	if first != "" {
		keys := make([]string, 0, len(inv))
		for k := range inv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if strings.EqualFold(inv[k].Name, first) && inv[k].Name != "" {
				key, err := ParseKey(k)
				if err != nil {
					continue
				}
				name := first
				if qty == 0 {
					name = ""
				}
				return Target{Key: key, Name: name, Qty: qty}, nil
			}
		}
	}

	// 2c. 全新物品:分配字典序最小的空闲规范键
	free, ok := FirstFreeKey(inv)
	if !ok {
		return Target{}, ErrNoFreeDrawer
	}
	key, err := ParseKey(free)
	if err != nil {
		return Target{}, err
	}
	return Target{Key: key, Name: first, Qty: qty}, nil
}
