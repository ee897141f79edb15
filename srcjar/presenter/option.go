package presenter

import "strings"

const (
	UnknownPresenter Option = iota
	TablePresenter
	JSONPresenter
	TemplatePresenter
)

var optionStr = []string{
	"UnknownPresenter",
	"table",
	"json",
	"template",
}

var Options = []Option{
	TablePresenter,
	JSONPresenter,
	TemplatePresenter,
}

type Option int

func ParseOption(userStr string) Option {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case strings.ToLower(TablePresenter.String()):
		return TablePresenter
	case strings.ToLower(JSONPresenter.String()):
		return JSONPresenter
	case strings.ToLower(TemplatePresenter.String()):
		return TemplatePresenter
	default:
		return UnknownPresenter
	}
}

func (o Option) String() string {
	if int(o) >= len(optionStr) || o < 0 {
		return optionStr[0]
	}

	return optionStr[o]
}
