package retained

import "sync"

// ============================================================================
// View Slice Pooling
// ============================================================================
//
// Layout passes snapshot the visible children of every container they touch,
// and Release walks whole subtrees with an explicit stack. Both borrow their
// scratch slices from this pool so that relaying out a large tree does not
// allocate per container.
//
// Usage:
//   children := acquireViewSlice(0)
//   children = append(children, ...)
//   ... use children ...
//   releaseViewSlice(children)

var viewSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]*View, 0, 16)
	},
}

// acquireViewSlice gets a slice with len == n from the pool.
// Caller must call releaseViewSlice when done.
func acquireViewSlice(n int) []*View {
	slice := viewSlicePool.Get().([]*View)
	if cap(slice) < n {
		viewSlicePool.Put(slice[:0])
		return make([]*View, n, n*2)
	}
	return slice[:n]
}

// releaseViewSlice returns a slice to the pool. The slice must not be used
// afterwards.
func releaseViewSlice(slice []*View) {
	if slice == nil {
		return
	}
	// Clear up to cap so popped stack entries do not pin views.
	clear(slice[:cap(slice)])
	// Very large slices are left to the GC.
	if cap(slice) <= 256 {
		viewSlicePool.Put(slice[:0])
	}
}

// scratch sizes for the main-axis pass of a box layout.
var floatSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]float32, 0, 16)
	},
}

func acquireFloatSlice(n int) []float32 {
	slice := floatSlicePool.Get().([]float32)
	if cap(slice) < n {
		floatSlicePool.Put(slice[:0])
		return make([]float32, n, n*2)
	}
	slice = slice[:n]
	for i := range slice {
		slice[i] = 0
	}
	return slice
}

func releaseFloatSlice(slice []float32) {
	if slice != nil && cap(slice) <= 256 {
		floatSlicePool.Put(slice[:0])
	}
}
