package extract

import (
	coreextract "github.com/dongqi-wu/reisego/core/extract"
)

// init registers built-in extractor backends.
func init() {
	_ = coreextract.RegisterExtractor("local", func(map[string]any) (coreextract.Extractor, error) {
		return NewLocalExtractor(), nil
	})
}
