package frames

import "github.com/phanxgames/frames/stream"

// Reducer produces the next version of a frame tree from the current one.
type Reducer func(*Frame) *Frame

// KeyedReducer is a Reducer meant for the child with the given key.
type KeyedReducer struct {
	Key     string
	Reducer Reducer
}

// KeyReducer tags every reducer of rs with key, so a parent can route it
// to the matching child.
func KeyReducer(key string, rs *stream.Stream[Reducer]) *stream.Stream[KeyedReducer] {
	return stream.Map(rs, func(r Reducer) KeyedReducer {
		return KeyedReducer{Key: key, Reducer: r}
	})
}

// LiftReducers merges the keyed reducer streams of every child component
// into reducers for the parent. Each lifted reducer applies the child's
// reducer to the parent's child with that key and leaves the rest of the
// tree untouched.
func LiftReducers(rss *stream.Stream[*stream.Stream[KeyedReducer]]) *stream.Stream[Reducer] {
	return stream.Map(stream.FlattenConcurrently(rss), func(kr KeyedReducer) Reducer {
		return func(tree *Frame) *Frame {
			if tree == nil {
				return nil
			}
			return tree.UpdateChild(kr.Key, kr.Reducer)
		}
	})
}

// Fold applies every reducer of rs to the tree in turn, starting from
// seed, and emits each resulting tree.
func Fold(seed *Frame, rs *stream.Stream[Reducer]) *stream.Stream[*Frame] {
	return stream.Create(func(em stream.Emitter[*Frame]) func() {
		tree := seed
		em.Next(tree)
		sub := rs.Subscribe(stream.Listener[Reducer]{
			Next: func(r Reducer) {
				tree = r(tree)
				em.Next(tree)
			},
			Error:    em.Error,
			Complete: em.Complete,
		})
		return sub.Unsubscribe
	})
}
