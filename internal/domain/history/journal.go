package history

import "sync"

// Journal 线性撤销/重做日志
// 设计说明:
// 1. 两个内存栈:history(已执行动作)和redo(已撤销动作),严格LIFO
// 2. 任何新写入都会清空redo栈——重做只在紧跟撤销之后有效,不支持分支历史
// 3. 进程内存态,重启后历史丢失(单会话假设,跨重启撤销见DESIGN.md)
// 4. 互斥锁保护栈操作本身;一次"弹出-回写-压栈"序列不是原子的,
//    并发会话间的历史一致性不在保证范围内
type Journal struct {
	mu      sync.Mutex
	history []Action
	redo    []Action
}

// NewJournal 创建空的撤销/重做日志
func NewJournal() *Journal {
	return &Journal{}
}

// Record 记录一次新的变更动作
// 新动作使所有"未来"失效,因此同时清空redo栈
func (j *Journal) Record(a Action) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.history = append(j.history, a)
	j.redo = j.redo[:0]
}

// PopHistory 弹出最近一次动作(用于撤销)
// 历史为空时返回false
func (j *Journal) PopHistory() (Action, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.history) == 0 {
		return Action{}, false
	}
	a := j.history[len(j.history)-1]
	j.history = j.history[:len(j.history)-1]
	return a, true
}

// PushHistory 把动作压回历史栈(重做成功后,或撤销失败时恢复)
func (j *Journal) PushHistory(a Action) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.history = append(j.history, a)
}

// PopRedo 弹出最近一次被撤销的动作(用于重做)
// redo栈为空时返回false
func (j *Journal) PopRedo() (Action, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.redo) == 0 {
		return Action{}, false
	}
	a := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]
	return a, true
}

// PushRedo 把动作压入redo栈(撤销成功后,或重做失败时恢复)
func (j *Journal) PushRedo(a Action) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.redo = append(j.redo, a)
}

// HistoryLen 当前可撤销的动作数
func (j *Journal) HistoryLen() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.history)
}

// RedoLen 当前可重做的动作数
func (j *Journal) RedoLen() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.redo)
}
