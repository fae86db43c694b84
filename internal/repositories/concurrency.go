package repositories

import (
	"context"

	"github.com/poofware/widget-service/internal/utils"
)

/*
EntityWithVersion:

* `comparable`  → lets us use `==` to compare two values of type T
* the identity and row_version accessors used by the CAS helpers
*/
type EntityWithVersion interface {
	comparable
	GetID() int64
	GetRowVersion() int64
	SetRowVersion(int64)
}

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id int64,
) (T, error)

/*
ResolveVersionMiss explains why a conditional UPDATE touched no rows.
The row is either gone (ErrWidgetNotFound) or has moved past the expected
version (ErrRowVersionConflict). Widgets are never deleted, so the probe
cannot race a removal.
*/
func ResolveVersionMiss[T EntityWithVersion](
	ctx context.Context,
	id int64,
	getByID GetByIDFunc[T],
) error {
	current, err := getByID(ctx, id)
	if err != nil {
		return err
	}

	// zero value of T (nil for pointers)
	var zero T
	if current == zero {
		return utils.ErrWidgetNotFound
	}
	return utils.ErrRowVersionConflict
}
