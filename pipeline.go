package hybridcache

// OpKind selects the operation a pipeline step performs.
type OpKind uint8

const (
	OpGet OpKind = iota + 1
	OpSet
	OpDelete
	OpExists
	OpPeek
	OpPurge
	OpClear
)

// Op is one step of a pipeline. Key and Value are consulted per kind the same
// way the corresponding method arguments would be.
type Op[V any] struct {
	Kind  OpKind
	Key   string
	Value V
}

// Result is the outcome of one pipeline step. OK carries the hit/membership
// result; for OpSet it reports that the write was applied (false only for the
// empty-key no-op), and for OpPurge/OpClear it is always true.
type Result[V any] struct {
	Value V
	OK    bool
}

// Apply executes ops back-to-back with no yield points in between, so an
// external serializer cannot interleave another actor's call mid-sequence.
// This is the cache's only concurrency-adjacent contract: compound
// read-modify-write sequences stay atomic by construction, not by locking.
// Unknown kinds produce an absent result.
func (c *cache[V]) Apply(ops []Op[V]) []Result[V] {
	out := make([]Result[V], len(ops))
	for i, op := range ops {
		switch op.Kind {
		case OpGet:
			out[i].Value, out[i].OK = c.Get(op.Key)
		case OpSet:
			c.Set(op.Key, op.Value)
			out[i] = Result[V]{Value: op.Value, OK: op.Key != ""}
		case OpDelete:
			out[i].Value, out[i].OK = c.Delete(op.Key)
		case OpExists:
			out[i].OK = c.Exists(op.Key)
		case OpPeek:
			out[i].Value, out[i].OK = c.Peek(op.Key)
		case OpPurge:
			c.Purge()
			out[i].OK = true
		case OpClear:
			c.Clear()
			out[i].OK = true
		}
	}
	return out
}
