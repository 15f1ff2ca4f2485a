package scheduler

import "container/heap"

// alarmHeap implements container/heap.Interface for alarmEntry,
// sorted by FireAt (earliest first — min-heap).
type alarmHeap []alarmEntry

func (h alarmHeap) Len() int           { return len(h) }
func (h alarmHeap) Less(i, j int) bool { return h[i].FireAt.Before(h[j].FireAt) }
func (h alarmHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *alarmHeap) Push(x any) {
	*h = append(*h, x.(alarmEntry))
}

func (h *alarmHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds an alarmEntry to the heap, maintaining heap invariant.
func heapPush(h *alarmHeap, e alarmEntry) {
	heap.Push(h, e)
}

// heapPop removes and returns the alarmEntry with the earliest FireAt.
// Panics if the heap is empty.
func heapPop(h *alarmHeap) alarmEntry {
	return heap.Pop(h).(alarmEntry)
}

// heapRemoveByTask removes the entry with the given task id.
// Returns true if the entry was found and removed, false otherwise.
func heapRemoveByTask(h *alarmHeap, taskID string) bool {
	for i, e := range *h {
		if e.TaskID == taskID {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}
