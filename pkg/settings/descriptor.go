package settings

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Type is the value type of a setting
type Type string

const (
	TypeString Type = "string"
	TypeBool   Type = "bool"
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
)

// Scope values used by plugins
const (
	ScopeWorld  = "world"
	ScopeClient = "client"
)

// Descriptor declares one setting
type Descriptor struct {
	Name  string
	Hint  string
	Scope string
	// Config marks settings shown in configuration UIs
	Config  bool
	Type    Type
	Choices map[string]string
	Default any
}

func (d Descriptor) validate() error {
	switch d.Type {
	case TypeString, TypeBool, TypeInt, TypeFloat:
	case "":
		return errors.New(errors.ErrSettingsInvalid, "setting descriptor has no type")
	default:
		return errors.Newf(errors.ErrSettingsInvalid, "unknown setting type %q", d.Type)
	}
	if d.Default == nil {
		return nil
	}
	def, err := d.coerce(d.Default)
	if err != nil {
		return errors.Wrap(err, errors.ErrSettingsInvalid, "default does not match setting type")
	}
	if !d.allows(def) {
		return errors.Newf(errors.ErrSettingsInvalid, "default %v is not one of the choices", def)
	}
	return nil
}

// coerce converts raw into the descriptor's Go type
func (d Descriptor) coerce(raw any) (any, error) {
	var target reflect.Type
	switch d.Type {
	case TypeString:
		target = reflect.TypeOf("")
	case TypeBool:
		target = reflect.TypeOf(false)
	case TypeInt:
		target = reflect.TypeOf(int64(0))
	case TypeFloat:
		target = reflect.TypeOf(float64(0))
	default:
		return raw, nil
	}
	out := reflect.New(target)
	if err := mapstructure.WeakDecode(raw, out.Interface()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsInvalid, "cannot use %v as %s", raw, d.Type)
	}
	return out.Elem().Interface(), nil
}

// allows reports whether v is one of the choices. No choices allows anything.
func (d Descriptor) allows(v any) bool {
	if len(d.Choices) == 0 {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, ok = d.Choices[s]
	return ok
}
