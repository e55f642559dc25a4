package hooks

import (
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
)

// RegisterListener is the typed form of an EventRegister listener
type RegisterListener func(reg Registrar, info VersionInfo) error

// AddAPIListener is the typed form of an EventAddAPI listener
type AddAPIListener func(pub exchange.Publisher) error

// OnRegister attaches fn to the registration broadcast
func OnRegister(events EventSource, fn RegisterListener) string {
	return events.On(EventRegister, func(args ...any) error {
		if len(args) < 1 {
			return errors.Newf(errors.ErrInvalidInput, "%s delivered without a registrar", EventRegister)
		}
		reg, ok := args[0].(Registrar)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "%s delivered %T instead of a registrar", EventRegister, args[0])
		}
		var info VersionInfo
		if len(args) > 1 {
			info, _ = args[1].(VersionInfo)
		}
		return fn(reg, info)
	})
}

// OnAddAPI attaches fn to the capability broadcast
func OnAddAPI(events EventSource, fn AddAPIListener) string {
	return events.On(EventAddAPI, func(args ...any) error {
		if len(args) < 1 {
			return errors.Newf(errors.ErrInvalidInput, "%s delivered without a publisher", EventAddAPI)
		}
		pub, ok := args[0].(exchange.Publisher)
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "%s delivered %T instead of a publisher", EventAddAPI, args[0])
		}
		return fn(pub)
	})
}
