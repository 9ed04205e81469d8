package usecase

// Category carries one data category's outcome. "Empty but
// successful" and "failed" are distinct states so one category's
// failure never contaminates another's export decision.
type Category[T any] struct {
	Attempted bool
	Data      T
	Err       error
}

func ok[T any](data T) Category[T] {
	return Category[T]{Attempted: true, Data: data}
}

func failed[T any](err error) Category[T] {
	return Category[T]{Attempted: true, Err: err}
}

// OK reports whether the category was fetched without error. An empty
// result set is still OK.
func (c Category[T]) OK() bool {
	return c.Attempted && c.Err == nil
}

func (c Category[T]) Failed() bool {
	return c.Attempted && c.Err != nil
}
