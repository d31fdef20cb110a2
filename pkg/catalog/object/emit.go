package object

import (
	"strconv"

	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// EmitName returns the rooted name an object is emitted under. Session
// objects are emitted under the name they were declared with.
func (o *BaseObject) EmitName() string {
	if o.IsSessionObject() {
		return o.sessionObjectName
	}
	return EnsureRooted(o.name)
}

// EmitMetaData returns a copy of the object's tags as they are emitted in
// mode. The object id is persisted only for storage; session objects carry
// their global name. The object's own tags are left as they were.
func (o *BaseObject) EmitMetaData(mode primitives.EmitMode) *statements.MetaData {
	md := o.MetaData()
	restore := stampEmissionTags(md, o, mode)
	defer restore()
	return md.Copy()
}

func stampEmissionTags(md *statements.MetaData, o *BaseObject, mode primitives.EmitMode) func() {
	saved := md.Copy()
	restore := func() { *md = *saved }

	if mode == primitives.ForStorage {
		md.AddOrUpdate(statements.ObjectIDTag, strconv.FormatInt(int64(o.id), 10), true)
	} else {
		md.Remove(statements.ObjectIDTag)
	}
	if o.IsSessionObject() {
		md.AddOrUpdate(statements.GlobalObjectNameTag, o.name, true)
	}
	return restore
}
