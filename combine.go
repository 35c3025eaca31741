package glimmer

func Combine2[T0, T1, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	fn func(T0, T1) O,
) *Computed[O] {
	if s0 == nil || s1 == nil {
		panic("glimmer: Combine2 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
		), nil
	})
}

func Combine3[T0, T1, T2, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	fn func(T0, T1, T2) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil {
		panic("glimmer: Combine3 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
		), nil
	})
}

func Combine4[T0, T1, T2, T3, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	s3 *Signal[T3],
	fn func(T0, T1, T2, T3) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil || s3 == nil {
		panic("glimmer: Combine4 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
			s3.Value(),
		), nil
	})
}

func Combine5[T0, T1, T2, T3, T4, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	s3 *Signal[T3],
	s4 *Signal[T4],
	fn func(T0, T1, T2, T3, T4) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil || s3 == nil || s4 == nil {
		panic("glimmer: Combine5 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
			s3.Value(),
			s4.Value(),
		), nil
	})
}

func Combine6[T0, T1, T2, T3, T4, T5, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	s3 *Signal[T3],
	s4 *Signal[T4],
	s5 *Signal[T5],
	fn func(T0, T1, T2, T3, T4, T5) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil || s3 == nil || s4 == nil || s5 == nil {
		panic("glimmer: Combine6 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
			s3.Value(),
			s4.Value(),
			s5.Value(),
		), nil
	})
}

func Combine7[T0, T1, T2, T3, T4, T5, T6, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	s3 *Signal[T3],
	s4 *Signal[T4],
	s5 *Signal[T5],
	s6 *Signal[T6],
	fn func(T0, T1, T2, T3, T4, T5, T6) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil || s3 == nil || s4 == nil || s5 == nil || s6 == nil {
		panic("glimmer: Combine7 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
			s3.Value(),
			s4.Value(),
			s5.Value(),
			s6.Value(),
		), nil
	})
}

func Combine8[T0, T1, T2, T3, T4, T5, T6, T7, O comparable](
	t *Tracker,
	s0 *Signal[T0],
	s1 *Signal[T1],
	s2 *Signal[T2],
	s3 *Signal[T3],
	s4 *Signal[T4],
	s5 *Signal[T5],
	s6 *Signal[T6],
	s7 *Signal[T7],
	fn func(T0, T1, T2, T3, T4, T5, T6, T7) O,
) *Computed[O] {
	if s0 == nil || s1 == nil || s2 == nil || s3 == nil || s4 == nil || s5 == nil || s6 == nil || s7 == nil {
		panic("glimmer: Combine8 called with a nil signal")
	}
	return NewComputed(t, func(oldValue O) (O, error) {
		return fn(
			s0.Value(),
			s1.Value(),
			s2.Value(),
			s3.Value(),
			s4.Value(),
			s5.Value(),
			s6.Value(),
			s7.Value(),
		), nil
	})
}
