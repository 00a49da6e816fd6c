package symcalc

// exprMap is a hash map keyed by expression structure.
type exprMap[V any] struct {
	buckets map[uint64][]exprEntry[V]
	size    int
}

type exprEntry[V any] struct {
	key Expr
	val V
}

func newExprMap[V any](capacity int) *exprMap[V] {
	return &exprMap[V]{buckets: make(map[uint64][]exprEntry[V], capacity)}
}

func (m *exprMap[V]) len() int { return m.size }

func (m *exprMap[V]) get(k Expr) (V, bool) {
	for _, e := range m.buckets[k.Hash()] {
		if e.key.Equal(k) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

func (m *exprMap[V]) put(k Expr, v V) {
	m.compute(k, func(V, bool) (V, bool) { return v, true })
}

// compute replaces the value stored under k with fn(old, found). When fn
// reports false the entry is removed.
func (m *exprMap[V]) compute(k Expr, fn func(old V, found bool) (V, bool)) {
	h := k.Hash()
	bucket := m.buckets[h]
	for i, e := range bucket {
		if !e.key.Equal(k) {
			continue
		}
		v, keep := fn(e.val, true)
		if keep {
			bucket[i].val = v
			return
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(m.buckets, h)
		} else {
			m.buckets[h] = bucket
		}
		m.size--
		return
	}
	var zero V
	if v, keep := fn(zero, false); keep {
		m.buckets[h] = append(bucket, exprEntry[V]{key: k, val: v})
		m.size++
	}
}

func (m *exprMap[V]) each(fn func(k Expr, v V)) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			fn(e.key, e.val)
		}
	}
}

func (m *exprMap[V]) clone() *exprMap[V] {
	c := &exprMap[V]{buckets: make(map[uint64][]exprEntry[V], len(m.buckets)), size: m.size}
	for h, bucket := range m.buckets {
		c.buckets[h] = append([]exprEntry[V](nil), bucket...)
	}
	return c
}
