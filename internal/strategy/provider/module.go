package provider

import "sync"

// moduleTable tracks loaded modules by path so that a module shared by
// several handles is released once, when its last handle closes.
type moduleTable[T any] struct {
	mu      sync.Mutex
	modules map[string]*moduleRef[T]
	unload  func(T) error
}

type moduleRef[T any] struct {
	value T
	refs  int
}

func newModuleTable[T any](unload func(T) error) *moduleTable[T] {
	return &moduleTable[T]{modules: make(map[string]*moduleRef[T]), unload: unload}
}

// acquire returns the module loaded from path, loading it on first use, and
// a release func that drops this reference.
func (mt *moduleTable[T]) acquire(path string, load func() (T, error)) (T, func() error, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	ref, ok := mt.modules[path]
	if !ok {
		value, err := load()
		if err != nil {
			var zero T
			return zero, nil, err
		}
		ref = &moduleRef[T]{value: value}
		mt.modules[path] = ref
	}
	ref.refs++

	var once sync.Once
	release := func() error {
		var err error
		once.Do(func() { err = mt.release(path, ref) })
		return err
	}
	return ref.value, release, nil
}

func (mt *moduleTable[T]) release(path string, ref *moduleRef[T]) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	ref.refs--
	if ref.refs > 0 {
		return nil
	}
	if mt.modules[path] == ref {
		delete(mt.modules, path)
	}
	if mt.unload != nil {
		return mt.unload(ref.value)
	}
	return nil
}

// loaded returns the number of modules currently held.
func (mt *moduleTable[T]) loaded() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.modules)
}
