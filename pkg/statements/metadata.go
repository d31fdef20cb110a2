package statements

import (
	"fmt"
	"strings"
)

// Well-known tag names written during emission.
const (
	ObjectIDTag         = "DAE.ObjectID"
	GlobalObjectNameTag = "DAE.GlobalObjectName"
)

// Tag is a single name/value annotation on a catalog object.
type Tag struct {
	Name     string
	Value    string
	IsStatic bool
}

// MetaData is an ordered set of tags. Names are unique and compared
// case-insensitively.
type MetaData struct {
	tags []Tag
}

// NewMetaData creates a metadata set holding the given tags in order.
func NewMetaData(tags ...Tag) *MetaData {
	md := &MetaData{}
	for _, t := range tags {
		md.AddOrUpdate(t.Name, t.Value, t.IsStatic)
	}
	return md
}

func (md *MetaData) indexOf(name string) int {
	for i, t := range md.tags {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// Len returns the number of tags.
func (md *MetaData) Len() int {
	if md == nil {
		return 0
	}
	return len(md.tags)
}

// Get returns the tag with the given name.
func (md *MetaData) Get(name string) (Tag, bool) {
	if md == nil {
		return Tag{}, false
	}
	if i := md.indexOf(name); i >= 0 {
		return md.tags[i], true
	}
	return Tag{}, false
}

// Has reports whether a tag with the given name exists.
func (md *MetaData) Has(name string) bool {
	_, ok := md.Get(name)
	return ok
}

// AddOrUpdate sets a tag value, appending it when absent.
func (md *MetaData) AddOrUpdate(name, value string, isStatic bool) {
	if i := md.indexOf(name); i >= 0 {
		md.tags[i].Value = value
		md.tags[i].IsStatic = isStatic
		return
	}
	md.tags = append(md.tags, Tag{Name: name, Value: value, IsStatic: isStatic})
}

// Remove deletes the named tag and returns the removed tag, if any.
func (md *MetaData) Remove(name string) (Tag, bool) {
	if md == nil {
		return Tag{}, false
	}
	i := md.indexOf(name)
	if i < 0 {
		return Tag{}, false
	}
	t := md.tags[i]
	md.tags = append(md.tags[:i], md.tags[i+1:]...)
	return t, true
}

// Tags returns a copy of the tags in order.
func (md *MetaData) Tags() []Tag {
	if md == nil {
		return nil
	}
	return append([]Tag(nil), md.tags...)
}

// Copy returns an independent copy. A nil receiver copies to an empty set.
func (md *MetaData) Copy() *MetaData {
	if md == nil {
		return &MetaData{}
	}
	return &MetaData{tags: md.Tags()}
}

// String renders the tags as "tags { A = "x" } static tags { B = "y" }".
func (md *MetaData) String() string {
	if md.Len() == 0 {
		return ""
	}
	var dynamic, static []string
	for _, t := range md.tags {
		rendered := fmt.Sprintf("%s = %q", t.Name, t.Value)
		if t.IsStatic {
			static = append(static, rendered)
		} else {
			dynamic = append(dynamic, rendered)
		}
	}

	var b statementBuilder
	if len(dynamic) > 0 {
		b.WriteString("tags ")
		b.writeList(dynamic)
	}
	if len(static) > 0 {
		b.writeIf(len(dynamic) > 0, " ")
		b.WriteString("static tags ")
		b.writeList(static)
	}
	return b.String()
}
