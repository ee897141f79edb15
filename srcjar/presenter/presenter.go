package presenter

import (
	"io"

	"github.com/anchore/srcjar/srcjar/presenter/json"
	"github.com/anchore/srcjar/srcjar/presenter/models"
	"github.com/anchore/srcjar/srcjar/presenter/table"
	"github.com/anchore/srcjar/srcjar/presenter/template"
)

// Presenter is the main interface other presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option. A nil presenter is returned for unknown options.
func GetPresenter(option Option, templateFile string, doc models.Document) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(doc)
	case TablePresenter:
		return table.NewPresenter(doc)
	case TemplatePresenter:
		return template.NewPresenter(doc, templateFile)
	default:
		return nil
	}
}
