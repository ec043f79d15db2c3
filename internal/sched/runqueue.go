package sched

import "github.com/emirpasic/gods/trees/redblacktree"

// runQueue holds the arrived, runnable (Ready or Paused) tasks ordered
// by (vruntime, identity), mirroring the CFS timeline. The running task
// is removed at dispatch and reinserted under its updated vruntime when
// preempted, so keys never go stale while a task is queued.
type runQueue struct {
	rbt *redblacktree.Tree
}

// nodeKey orders the tree by vruntime, then identity.
type nodeKey struct {
	vruntime int64
	id       TaskID
}

func cmpNodeKey(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.vruntime < kb.vruntime:
		return -1
	case ka.vruntime > kb.vruntime:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

func newRunQueue() *runQueue {
	return &runQueue{rbt: redblacktree.NewWith(cmpNodeKey)}
}

func (q *runQueue) put(t *Task) {
	q.rbt.Put(nodeKey{vruntime: t.Vruntime, id: t.ID}, t)
}

func (q *runQueue) remove(t *Task) {
	q.rbt.Remove(nodeKey{vruntime: t.Vruntime, id: t.ID})
}

// each visits queued tasks in (vruntime, identity) order.
func (q *runQueue) each(fn func(*Task)) {
	it := q.rbt.Iterator()
	for it.Next() {
		fn(it.Value().(*Task))
	}
}
