package meta

import "errors"

var (
	// ErrNotStruct is returned when a model passed to Describe is not a struct.
	ErrNotStruct = errors.New("meta: model is not a struct")

	// ErrInvalidTag is returned for a malformed rel or db struct tag, or one
	// that does not fit the field it is attached to.
	ErrInvalidTag = errors.New("meta: invalid tag")

	// ErrDuplicateAttr is returned when two attributes of an entity share a name.
	ErrDuplicateAttr = errors.New("meta: duplicate attribute")

	// ErrNilAttr is returned by NewEntity for a nil attribute.
	ErrNilAttr = errors.New("meta: nil attribute")

	// ErrNilEntity is returned by Registry.Add for a nil entity.
	ErrNilEntity = errors.New("meta: nil entity")

	// ErrDuplicateEntity is returned when an entity name is registered twice.
	ErrDuplicateEntity = errors.New("meta: duplicate entity")

	// ErrUnknownTarget is returned by Validate for a relation whose target
	// entity is not registered.
	ErrUnknownTarget = errors.New("meta: unknown relation target")

	// ErrBackPopulates is returned by Validate when back_populates does not
	// name a relation on the target pointing back at the source.
	ErrBackPopulates = errors.New("meta: inconsistent back_populates")
)
