package substore

import "errors"

var (
	ErrInvalidCatalog     = errors.New("invalid offer catalog")
	ErrDuplicateOffer     = errors.New("duplicate offer ID in catalog")
	ErrUnknownRuleKind    = errors.New("unknown access rule kind")
	ErrFailedToReadFile   = errors.New("failed to read catalog file")
	ErrFailedToDecodeYAML = errors.New("failed to decode catalog YAML")
)
