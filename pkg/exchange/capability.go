package exchange

// Capability is a self-describing value: it carries its own lookup name
type Capability struct {
	Name  string
	Value any
}

// Named builds a Capability
func Named(name string, value any) Capability {
	return Capability{Name: name, Value: value}
}

// Descriptor is implemented by values that know their own capability name
type Descriptor interface {
	CapabilityName() string
}

// Describe builds a Capability from a value that names itself
func Describe(v Descriptor) Capability {
	if v == nil {
		return Capability{}
	}
	return Capability{Name: v.CapabilityName(), Value: v}
}

// Reader reads published capabilities
type Reader interface {
	Lookup(owner, name string) (any, bool)
}

// Publisher is handed to plugins during the capability broadcast. It can
// read what the core and earlier listeners already published.
type Publisher interface {
	Reader
	Publish(owner string, caps ...Capability) error
}
