package country

// UnknownName is what a lookup yields when the id is not in the directory.
const UnknownName = "Unknown"

type Entry struct {
	ID   int64
	Name string
}

// Directory maps provider nationality ids to country names. It is filled
// once by NewDirectory and never mutated afterwards, so concurrent readers
// need no locking.
type Directory struct {
	names map[int64]string
}

// NewDirectory builds a directory from entries; on duplicate ids the last
// entry wins.
func NewDirectory(entries []Entry) Directory {
	names := make(map[int64]string, len(entries))
	for _, entry := range entries {
		names[entry.ID] = entry.Name
	}
	return Directory{names: names}
}

// Name resolves id, falling back to UnknownName.
func (d Directory) Name(id int64) string {
	if name, ok := d.names[id]; ok {
		return name
	}
	return UnknownName
}

func (d Directory) Len() int {
	return len(d.names)
}

// Each calls fn for every entry in unspecified order.
func (d Directory) Each(fn func(id int64, name string)) {
	for id, name := range d.names {
		fn(id, name)
	}
}
