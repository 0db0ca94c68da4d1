package brew

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Import errors. The derivation engine itself never fails; these are only
// returned while decoding a recipe document. Compare them with errors.Is.
const (
	ErrInvalidMethod      = constError("invalid brewing method")
	ErrInvalidMode        = constError("invalid conditioning mode")
	ErrInvalidWaterSource = constError("invalid water source")
	ErrInvalidUserType    = constError("invalid user type")
	ErrUnsupportedVersion = constError("unsupported recipe version")
	ErrUnknownFormat      = constError("unknown recipe format")
)
