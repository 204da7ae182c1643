package convert

import (
	coreconvert "github.com/dongqi-wu/reisego/core/convert"
	"github.com/dongqi-wu/reisego/core/factory"
)

// init registers built-in converter backends.
func init() {
	_ = coreconvert.RegisterConverter("nop", func(map[string]any) (coreconvert.Converter, error) {
		return coreconvert.NopConverter{}, nil
	})

	_ = coreconvert.RegisterConverter("exec", func(conf map[string]any) (coreconvert.Converter, error) {
		var c struct {
			Command []string `json:"command"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewExecConverter(c.Command)
	})
}
