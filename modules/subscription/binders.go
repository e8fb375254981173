package subscription

import "github.com/supersub/supersub/pkg/binder"

var (
	bindJSON  = binder.JSON()
	bindQuery = binder.Query()
	bindPath  = binder.Path()
)
