package coltype

import "reflect"

// Matches reports whether t is an instance of ref. When ref is an interface
// type, implementing it counts as an instance.
//
// If t itself does not match but is a Decorator, its Impl is tested
// instead. Only one level is unwrapped: a Decorator around a Decorator
// around ref does not match. Values that are not Decorators never have
// their contents inspected.
//
// A non-nil pointer to ref counts as an instance of ref. Nil pointers never
// match and are never unwrapped.
func Matches(t Type, ref reflect.Type) bool {
	if isNil(t) || ref == nil {
		return false
	}
	if instanceOf(t, ref) {
		return true
	}
	d, ok := t.(Decorator)
	if !ok {
		return false
	}
	impl := d.Impl()
	if isNil(impl) {
		return false
	}
	return instanceOf(impl, ref)
}

// Is is the generic form of Matches.
//
//	coltype.Is[coltype.DateTime](col.Type)
func Is[T Type](t Type) bool {
	return Matches(t, reflect.TypeFor[T]())
}

func instanceOf(t Type, ref reflect.Type) bool {
	rt := reflect.TypeOf(t)
	if rt == ref {
		return true
	}
	if ref.Kind() == reflect.Interface {
		return rt.Implements(ref)
	}
	return rt.Kind() == reflect.Pointer && rt.Elem() == ref
}

// isNil reports whether t is nil or a nil pointer.
func isNil(t Type) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
